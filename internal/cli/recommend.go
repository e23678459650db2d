package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfume-finder/internal/catalog"
	"github.com/vijay-prabhu/perfume-finder/internal/output"
	"github.com/vijay-prabhu/perfume-finder/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend perfumes from quiz answers",
	Long: `Answer the "find your perfume" quiz from the command line.

The assistant backend is asked first when configured; otherwise, or when it
fails, the local scorer ranks the catalog.

Examples:
  perfume recommend --gender=male --age=30 --occasion=daily --budget=high
  perfume recommend --gender=female --age=27 --occasion=night --budget=luxury \
      --like=vanilla,rose --dislike=oud --sweetness=4 --limit=5`,
	RunE: runRecommend,
}

type surveyFlags struct {
	gender     string
	age        int
	occasion   string
	budget     string
	like       []string
	dislike    []string
	sweetness  int
	longevity  int
	sillage    int
	uniqueness int
	local      bool
	limit      int
}

var recFlags surveyFlags

func init() {
	rootCmd.AddCommand(recommendCmd)

	f := recommendCmd.Flags()
	f.StringVar(&recFlags.gender, "gender", "", "Gender (male, female, unisex)")
	f.IntVar(&recFlags.age, "age", 0, "Age in years")
	f.StringVar(&recFlags.occasion, "occasion", "", "Occasion (daily, special, night, work)")
	f.StringVar(&recFlags.budget, "budget", "", "Budget (low, medium, high, luxury)")
	f.StringSliceVar(&recFlags.like, "like", nil, "Notes you like (comma separated)")
	f.StringSliceVar(&recFlags.dislike, "dislike", nil, "Notes you dislike (comma separated)")
	f.IntVar(&recFlags.sweetness, "sweetness", 0, "Preferred sweetness 1-5")
	f.IntVar(&recFlags.longevity, "longevity", 0, "Preferred longevity 1-5")
	f.IntVar(&recFlags.sillage, "sillage", 0, "Preferred sillage 1-5")
	f.IntVar(&recFlags.uniqueness, "uniqueness", 0, "Preferred uniqueness 1-5")
	f.BoolVar(&recFlags.local, "local", false, "Skip the assistant backend and score locally")
	f.IntVar(&recFlags.limit, "limit", 0, "Number of recommendations (default from config)")

	for _, name := range []string{"gender", "age", "occasion", "budget"} {
		_ = recommendCmd.MarkFlagRequired(name)
	}
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	limit := recFlags.limit
	if limit <= 0 {
		limit = cfg.Recommend.DefaultLimit
	}
	if limit > cfg.Recommend.MaxLimit {
		limit = cfg.Recommend.MaxLimit
	}

	svc := recommend.NewService(cat, nil)
	if !recFlags.local {
		svc = newRecommendService(cfg, cat, newAssistant(cfg))
	}

	outcome, err := svc.Recommend(cmd.Context(), recFlags.survey(), limit)
	if err != nil {
		var verr *recommend.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				fmt.Fprintf(os.Stderr, "  --%s: failed %s\n", flagForField(f.Field), f.Rule)
			}
		}
		return err
	}

	return output.Output(outputFmt, outcome)
}

// survey converts flag values to quiz answers, zero preferences mean unset
func (f surveyFlags) survey() recommend.Survey {
	return recommend.Survey{
		Gender:   catalog.Gender(strings.ToLower(f.gender)),
		Age:      f.age,
		Occasion: recommend.Occasion(strings.ToLower(f.occasion)),
		Budget:   recommend.Budget(strings.ToLower(f.budget)),
		Preferences: recommend.Preferences{
			Sweetness:  optionalInt(f.sweetness),
			Longevity:  optionalInt(f.longevity),
			Sillage:    optionalInt(f.sillage),
			Uniqueness: optionalInt(f.uniqueness),
		},
		LikedNotes:    f.like,
		DislikedNotes: f.dislike,
	}
}

func optionalInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

// flagForField maps a survey field path like "preferences.sweetness" to its flag
func flagForField(field string) string {
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch field {
	case "likedNotes":
		return "like"
	case "dislikedNotes":
		return "dislike"
	default:
		return field
	}
}
