package catalog

import "slices"

// Gender is the target audience of a perfume or a survey
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
)

// Valid reports whether g is one of the known genders
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnisex:
		return true
	}
	return false
}

// AgeRange is an inclusive age interval
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether age falls within the range
func (r AgeRange) Contains(age int) bool {
	return age >= r.Min && age <= r.Max
}

// Rating holds subjective 1-5 sub-scores. A nil field means the value is unknown.
type Rating struct {
	Sweetness  *int `json:"sweetness,omitempty"`
	Longevity  *int `json:"longevity,omitempty"`
	Sillage    *int `json:"sillage,omitempty"`
	Uniqueness *int `json:"uniqueness,omitempty"`
}

// Perfume is a single catalog record
type Perfume struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Gender          Gender   `json:"gender"`
	Notes           []string `json:"notes"`
	Characteristics []string `json:"characteristics"`
	AgeRange        AgeRange `json:"ageRange"`
	Rating          *Rating  `json:"rating,omitempty"`
}

// SuitsGender reports whether the perfume is meant for g, unisex perfumes suit everyone
func (p *Perfume) SuitsGender(g Gender) bool {
	return p.Gender == g || p.Gender == GenderUnisex
}

// clone returns a deep copy so callers cannot mutate catalog state
func (p Perfume) clone() Perfume {
	p.Notes = slices.Clone(p.Notes)
	p.Characteristics = slices.Clone(p.Characteristics)
	if p.Rating != nil {
		r := Rating{
			Sweetness:  cloneInt(p.Rating.Sweetness),
			Longevity:  cloneInt(p.Rating.Longevity),
			Sillage:    cloneInt(p.Rating.Sillage),
			Uniqueness: cloneInt(p.Rating.Uniqueness),
		}
		p.Rating = &r
	}
	return p
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// ListOptions contains options for listing perfumes
type ListOptions struct {
	Gender   *Gender
	Brand    *string
	MaxPrice *float64
	Limit    int
}
