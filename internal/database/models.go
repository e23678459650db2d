package database

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Submission is one completed quiz. Recommendations themselves are not stored.
type Submission struct {
	ID            string         `json:"id"`
	Gender        string         `json:"gender"`
	Age           int            `json:"age"`
	Occasion      string         `json:"occasion"`
	Budget        string         `json:"budget"`
	Preferences   map[string]int `json:"preferences,omitempty"`
	LikedNotes    []string       `json:"liked_notes,omitempty"`
	DislikedNotes []string       `json:"disliked_notes,omitempty"`
	Source        string         `json:"source"`
	ResultCount   int            `json:"result_count"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Stats represents aggregate quiz statistics
type Stats struct {
	TotalSubmissions int            `json:"total_submissions"`
	ByGender         map[string]int `json:"by_gender"`
	ByOccasion       map[string]int `json:"by_occasion"`
	ByBudget         map[string]int `json:"by_budget"`
	AIServed         int            `json:"ai_served"`
	LocalServed      int            `json:"local_served"`
	NoMatches        int            `json:"no_matches"`
	AverageAge       float64        `json:"average_age"`
}

// ListOptions contains options for listing submissions
type ListOptions struct {
	Occasion *string
	Since    *time.Time
	Limit    int
	Offset   int
}

// encodeJSON stores v as a JSON column, nil and empty values become NULL
func encodeJSON(v interface{}) (sql.NullString, error) {
	switch t := v.(type) {
	case []string:
		if len(t) == 0 {
			return sql.NullString{}, nil
		}
	case map[string]int:
		if len(t) == 0 {
			return sql.NullString{}, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// decodeJSON parses a nullable JSON column into v
func decodeJSON(ns sql.NullString, v interface{}) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), v)
}
