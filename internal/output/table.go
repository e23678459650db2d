package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/perfume-finder/internal/catalog"
	"github.com/vijay-prabhu/perfume-finder/internal/database"
	"github.com/vijay-prabhu/perfume-finder/internal/recommend"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []catalog.Perfume:
		return perfumesTable(w, v)
	case catalog.Perfume:
		return perfumeDetail(w, &v)
	case *catalog.Perfume:
		return perfumeDetail(w, v)
	case []catalog.NoteMatch:
		return noteMatchesTable(w, v)
	case *recommend.Outcome:
		return outcomeTable(w, v)
	case *database.Stats:
		return statsTable(w, v)
	case []database.Submission:
		return submissionsTable(w, v)
	case *database.Submission:
		return submissionDetail(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func perfumesTable(w io.Writer, perfumes []catalog.Perfume) error {
	if len(perfumes) == 0 {
		fmt.Fprintln(w, "No perfumes found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "NAME", "BRAND", "GENDER", "PRICE")
	for _, p := range perfumes {
		row := []string{
			p.ID,
			truncate(p.Name, 30),
			truncate(p.Brand, 24),
			string(p.Gender),
			formatPrice(p.Price),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func perfumeDetail(w io.Writer, p *catalog.Perfume) error {
	fmt.Fprintf(w, "Name:            %s\n", p.Name)
	fmt.Fprintf(w, "Brand:           %s\n", p.Brand)
	fmt.Fprintf(w, "ID:              %s\n", p.ID)
	fmt.Fprintf(w, "Gender:          %s\n", p.Gender)
	fmt.Fprintf(w, "Price:           %s\n", formatPrice(p.Price))
	fmt.Fprintf(w, "Ages:            %d-%d\n", p.AgeRange.Min, p.AgeRange.Max)
	fmt.Fprintf(w, "Notes:           %s\n", strings.Join(p.Notes, ", "))
	fmt.Fprintf(w, "Characteristics: %s\n", strings.Join(p.Characteristics, ", "))

	if p.Rating != nil {
		fmt.Fprintf(w, "Rating:          sweetness %s, longevity %s, sillage %s, uniqueness %s\n",
			formatRating(p.Rating.Sweetness), formatRating(p.Rating.Longevity),
			formatRating(p.Rating.Sillage), formatRating(p.Rating.Uniqueness))
	}

	if p.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.Description)
	}

	return nil
}

func noteMatchesTable(w io.Writer, matches []catalog.NoteMatch) error {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No perfumes contain those notes.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "NAME", "BRAND", "MATCHED NOTES")
	for _, m := range matches {
		row := []string{
			m.Perfume.ID,
			truncate(m.Perfume.Name, 30),
			truncate(m.Perfume.Brand, 24),
			strings.Join(m.MatchedNotes, ", "),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func outcomeTable(w io.Writer, o *recommend.Outcome) error {
	if len(o.Recommendations) == 0 {
		fmt.Fprintln(w, "No matching perfumes. Try a different budget or fewer disliked notes.")
		return nil
	}

	fmt.Fprintf(w, "Recommendations (%s)\n", o.Source)

	table := tablewriter.NewWriter(w)
	table.Header("#", "SCORE", "NAME", "BRAND", "PRICE", "WHY")
	for i, r := range o.Recommendations {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.MatchScore),
			truncate(r.Perfume.Name, 30),
			truncate(r.Perfume.Brand, 24),
			formatPrice(r.Perfume.Price),
			strings.Join(r.MatchReasons, "; "),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Quiz Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total submissions:      %d\n", s.TotalSubmissions)
	fmt.Fprintf(w, "Served by AI:           %d\n", s.AIServed)
	fmt.Fprintf(w, "Served locally:         %d\n", s.LocalServed)
	fmt.Fprintf(w, "No matches:             %d\n", s.NoMatches)

	if s.TotalSubmissions > 0 {
		fmt.Fprintf(w, "Average age:            %.1f\n", s.AverageAge)
	}

	writeCounts(w, "By gender", s.ByGender)
	writeCounts(w, "By occasion", s.ByOccasion)
	writeCounts(w, "By budget", s.ByBudget)

	return nil
}

func submissionsTable(w io.Writer, subs []database.Submission) error {
	if len(subs) == 0 {
		fmt.Fprintln(w, "No quiz submissions yet.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "WHEN", "GENDER", "AGE", "OCCASION", "BUDGET", "SOURCE", "RESULTS")
	for _, s := range subs {
		row := []string{
			s.ID,
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Gender,
			strconv.Itoa(s.Age),
			s.Occasion,
			s.Budget,
			s.Source,
			strconv.Itoa(s.ResultCount),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func submissionDetail(w io.Writer, s *database.Submission) error {
	fmt.Fprintf(w, "Submission: %s\n", s.ID)
	fmt.Fprintf(w, "When:       %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Gender:     %s\n", s.Gender)
	fmt.Fprintf(w, "Age:        %d\n", s.Age)
	fmt.Fprintf(w, "Occasion:   %s\n", s.Occasion)
	fmt.Fprintf(w, "Budget:     %s\n", s.Budget)
	fmt.Fprintf(w, "Served by:  %s (%d results)\n", s.Source, s.ResultCount)
	if len(s.LikedNotes) > 0 {
		fmt.Fprintf(w, "Likes:      %s\n", strings.Join(s.LikedNotes, ", "))
	}
	if len(s.DislikedNotes) > 0 {
		fmt.Fprintf(w, "Dislikes:   %s\n", strings.Join(s.DislikedNotes, ", "))
	}
	writeCounts(w, "Preferences", s.Preferences)
	return nil
}

func writeCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-10s %d\n", k, counts[k])
	}
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func formatRating(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
