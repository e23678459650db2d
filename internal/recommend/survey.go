package recommend

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vijay-prabhu/perfume-finder/internal/catalog"
)

// Occasion is the use-case a perfume is chosen for
type Occasion string

const (
	OccasionDaily   Occasion = "daily"
	OccasionSpecial Occasion = "special"
	OccasionNight   Occasion = "night"
	OccasionWork    Occasion = "work"
)

// Budget is a price tier label
type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
	BudgetLuxury Budget = "luxury"
)

// Range is a closed price interval
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether price lies within the interval, bounds included
func (r Range) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

func (r Range) String() string {
	if math.IsInf(r.Max, 1) {
		return fmt.Sprintf("%g+", r.Min)
	}
	return fmt.Sprintf("%g-%g", r.Min, r.Max)
}

var budgetRanges = map[Budget]Range{
	BudgetLow:    {Min: 0, Max: 700},
	BudgetMedium: {Min: 701, Max: 1100},
	BudgetHigh:   {Min: 1101, Max: 1500},
	BudgetLuxury: {Min: 1501, Max: math.Inf(1)},
}

// BudgetRange returns the price interval for a budget tier
func BudgetRange(b Budget) (Range, bool) {
	r, ok := budgetRanges[b]
	return r, ok
}

var occasionKeywords = map[Occasion][]string{
	OccasionDaily:   {"fresh", "light", "clean"},
	OccasionSpecial: {"unique", "luxurious", "elegant"},
	OccasionNight:   {"seductive", "intense", "dark"},
	OccasionWork:    {"clean", "professional", "subtle"},
}

// OccasionKeywords returns the characteristics that suit an occasion.
// Unknown occasions have no keywords.
func OccasionKeywords(o Occasion) []string {
	kw := occasionKeywords[o]
	out := make([]string, len(kw))
	copy(out, kw)
	return out
}

// Preferences are optional 1-5 sub-scores chosen by the user
type Preferences struct {
	Sweetness          *int `json:"sweetness,omitempty" validate:"omitempty,min=1,max=5"`
	Longevity          *int `json:"longevity,omitempty" validate:"omitempty,min=1,max=5"`
	Sillage            *int `json:"sillage,omitempty" validate:"omitempty,min=1,max=5"`
	Uniqueness         *int `json:"uniqueness,omitempty" validate:"omitempty,min=1,max=5"`
	BrandConsciousness *int `json:"brandConsciousness,omitempty" validate:"omitempty,min=1,max=5"`
}

// Survey is the set of quiz answers driving a recommendation
type Survey struct {
	Gender        catalog.Gender `json:"gender" validate:"required,oneof=male female unisex"`
	Age           int            `json:"age" validate:"required,min=1,max=120"`
	Occasion      Occasion       `json:"occasion" validate:"required,oneof=daily special night work"`
	Budget        Budget         `json:"budget" validate:"required,oneof=low medium high luxury"`
	Preferences   Preferences    `json:"preferences"`
	LikedNotes    []string       `json:"likedNotes,omitempty"`
	DislikedNotes []string       `json:"dislikedNotes,omitempty"`
}

// FieldError describes one invalid survey field
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (f FieldError) String() string {
	return f.Field + " failed " + f.Rule
}

// ValidationError is returned when a survey fails validation
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "invalid survey: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the survey against its required fields and enums
func (s *Survey) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid survey: %w", err)
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		out.Fields = append(out.Fields, FieldError{Field: field, Rule: fe.Tag()})
	}
	return out
}
