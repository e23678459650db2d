package catalog

import (
	"testing"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("expected embedded catalog to contain perfumes")
	}

	seen := make(map[string]bool)
	for _, p := range c.All() {
		if seen[p.ID] {
			t.Errorf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestNew_Validation(t *testing.T) {
	valid := Perfume{
		ID:       "a",
		Name:     "A",
		Price:    100,
		Gender:   GenderMale,
		AgeRange: AgeRange{Min: 18, Max: 40},
	}

	tests := []struct {
		name    string
		modify  func(*Perfume)
		wantErr bool
	}{
		{"valid perfume", func(p *Perfume) {}, false},
		{"zero price", func(p *Perfume) { p.Price = 0 }, true},
		{"unknown gender", func(p *Perfume) { p.Gender = "other" }, true},
		{"inverted age range", func(p *Perfume) { p.AgeRange = AgeRange{Min: 50, Max: 20} }, true},
		{"missing id", func(p *Perfume) { p.ID = "" }, true},
		{"rating out of range", func(p *Perfume) { p.Rating = &Rating{Sillage: IntPtr(9)} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.modify(&p)

			_, err := New([]Perfume{p})
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_RatingErrorsInFieldOrder(t *testing.T) {
	p := Perfume{
		ID: "r", Name: "R", Price: 10, Gender: GenderUnisex, AgeRange: AgeRange{Min: 1, Max: 99},
		Rating: &Rating{Sweetness: IntPtr(0), Longevity: IntPtr(6), Sillage: IntPtr(7), Uniqueness: IntPtr(-1)},
	}

	want := "perfume #0 (r): rating.sweetness must be between 1 and 5, got 0\n" +
		"rating.longevity must be between 1 and 5, got 6\n" +
		"rating.sillage must be between 1 and 5, got 7\n" +
		"rating.uniqueness must be between 1 and 5, got -1"

	for i := 0; i < 20; i++ {
		_, err := New([]Perfume{p})
		if err == nil {
			t.Fatal("expected rating errors")
		}
		if err.Error() != want {
			t.Fatalf("error = %q, want %q", err.Error(), want)
		}
	}
}

func TestNew_DuplicateID(t *testing.T) {
	p := Perfume{ID: "dup", Name: "Dup", Price: 10, Gender: GenderUnisex, AgeRange: AgeRange{Min: 1, Max: 99}}
	if _, err := New([]Perfume{p, p}); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestAll_ReturnsCopies(t *testing.T) {
	c, err := New([]Perfume{{
		ID: "x", Name: "X", Price: 10, Gender: GenderMale,
		Notes: []string{"oud"}, AgeRange: AgeRange{Min: 1, Max: 99},
		Rating: &Rating{Sweetness: IntPtr(3)},
	}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	items := c.All()
	items[0].Notes[0] = "changed"
	*items[0].Rating.Sweetness = 1

	fresh, _ := c.Get("x")
	if fresh.Notes[0] != "oud" {
		t.Errorf("catalog notes were mutated: %v", fresh.Notes)
	}
	if *fresh.Rating.Sweetness != 3 {
		t.Errorf("catalog rating was mutated: %d", *fresh.Rating.Sweetness)
	}
}

func TestList(t *testing.T) {
	c, _ := Default()

	female := GenderFemale
	for _, p := range c.List(ListOptions{Gender: &female}) {
		if p.Gender != GenderFemale && p.Gender != GenderUnisex {
			t.Errorf("List(female) returned %s with gender %s", p.ID, p.Gender)
		}
	}

	maxPrice := 800.0
	for _, p := range c.List(ListOptions{MaxPrice: &maxPrice}) {
		if p.Price > maxPrice {
			t.Errorf("List(max_price=800) returned %s at %v", p.ID, p.Price)
		}
	}

	brand := "tom ford"
	got := c.List(ListOptions{Brand: &brand})
	if len(got) != 2 {
		t.Errorf("expected 2 Tom Ford perfumes, got %d", len(got))
	}

	if got := c.List(ListOptions{Limit: 3}); len(got) != 3 {
		t.Errorf("expected limit 3, got %d", len(got))
	}
}

func TestSearch(t *testing.T) {
	c, _ := Default()

	tests := []struct {
		query   string
		wantID  string
		wantAny bool
	}{
		{"sauvage", "sauvage-edt", true},
		{"OUD", "oud-wood", true},
		{"truffle", "black-orchid", true},
		{"nonexistent-note", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		results := c.Search(tt.query)
		if !tt.wantAny {
			if len(results) != 0 {
				t.Errorf("Search(%q) expected no results, got %d", tt.query, len(results))
			}
			continue
		}
		found := false
		for _, p := range results {
			if p.ID == tt.wantID {
				found = true
			}
		}
		if !found {
			t.Errorf("Search(%q) did not return %s", tt.query, tt.wantID)
		}
	}
}

func TestByNotes(t *testing.T) {
	c, _ := Default()

	matches := c.ByNotes([]string{"Sandalwood", "cardamom"}, nil)
	if len(matches) == 0 {
		t.Fatal("expected matches for sandalwood/cardamom")
	}
	for i := 1; i < len(matches); i++ {
		if len(matches[i-1].MatchedNotes) < len(matches[i].MatchedNotes) {
			t.Errorf("matches not ordered by matched note count at %d", i)
		}
	}
	if len(matches[0].MatchedNotes) != 2 {
		t.Errorf("expected first match to contain both notes, got %v", matches[0].MatchedNotes)
	}

	male := GenderMale
	for _, m := range c.ByNotes([]string{"jasmine"}, &male) {
		if !m.Perfume.SuitsGender(male) {
			t.Errorf("ByNotes(male) returned %s", m.Perfume.ID)
		}
	}

	if got := c.ByNotes([]string{" "}, nil); got != nil {
		t.Errorf("expected nil for blank notes, got %v", got)
	}
}

func TestBrandsAndNotes(t *testing.T) {
	c, _ := Default()

	brands := c.Brands()
	for i := 1; i < len(brands); i++ {
		if brands[i-1] >= brands[i] {
			t.Errorf("brands not sorted/unique at %d: %q, %q", i, brands[i-1], brands[i])
		}
	}

	notes := c.Notes()
	for i := 1; i < len(notes); i++ {
		if notes[i-1] >= notes[i] {
			t.Errorf("notes not sorted/unique at %d: %q, %q", i, notes[i-1], notes[i])
		}
	}
}

func TestContainsKeyword(t *testing.T) {
	tests := []struct {
		list     []string
		keyword  string
		expected bool
	}{
		{[]string{"Oud", "rose"}, "oud", true},
		{[]string{"oud"}, " OUD ", true},
		{[]string{"rosewood"}, "rose", false},
		{nil, "rose", false},
	}

	for _, tt := range tests {
		if got := ContainsKeyword(tt.list, tt.keyword); got != tt.expected {
			t.Errorf("ContainsKeyword(%v, %q) = %v, want %v", tt.list, tt.keyword, got, tt.expected)
		}
	}
}
