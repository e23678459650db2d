package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "perfume-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func TestOpen(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if db == nil {
		t.Fatal("expected non-nil database")
	}

	// Verify tables exist
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='submissions'").Scan(&count)
	if err != nil {
		t.Fatalf("failed to query tables: %v", err)
	}
	if count != 1 {
		t.Errorf("expected submissions table to exist")
	}

	if err := db.Health(context.Background()); err != nil {
		t.Errorf("Health() error: %v", err)
	}
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() error: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("second Open() error: %v", err)
	}
	db.Close()
}

func TestSubmissionCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	s := &Submission{
		Gender:        "female",
		Age:           29,
		Occasion:      "night",
		Budget:        "high",
		Preferences:   map[string]int{"sweetness": 4},
		LikedNotes:    []string{"vanilla", "jasmine"},
		DislikedNotes: []string{"oud"},
		Source:        "local",
		ResultCount:   3,
	}

	if err := db.CreateSubmission(ctx, s); err != nil {
		t.Fatalf("CreateSubmission failed: %v", err)
	}
	if s.ID == "" {
		t.Error("expected ID to be set after create")
	}

	fetched, err := db.GetSubmission(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetSubmission failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected submission to be found")
	}
	if fetched.Occasion != "night" {
		t.Errorf("expected Occasion=night, got %s", fetched.Occasion)
	}
	if len(fetched.LikedNotes) != 2 || fetched.LikedNotes[1] != "jasmine" {
		t.Errorf("unexpected liked notes: %v", fetched.LikedNotes)
	}
	if fetched.Preferences["sweetness"] != 4 {
		t.Errorf("expected sweetness=4, got %v", fetched.Preferences)
	}

	missing, err := db.GetSubmission(ctx, "missing")
	if err != nil {
		t.Fatalf("GetSubmission(missing) failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown submission")
	}
}

func TestSubmission_EmptyOptionalFields(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	s := &Submission{Gender: "male", Age: 40, Occasion: "work", Budget: "low", Source: "local"}
	if err := db.CreateSubmission(ctx, s); err != nil {
		t.Fatalf("CreateSubmission failed: %v", err)
	}

	fetched, _ := db.GetSubmission(ctx, s.ID)
	if fetched.LikedNotes != nil || fetched.Preferences != nil {
		t.Errorf("expected empty optional fields, got %v %v", fetched.LikedNotes, fetched.Preferences)
	}
}

func TestListSubmissionsWithFilters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now().UTC()
	subs := []Submission{
		{Gender: "male", Age: 30, Occasion: "work", Budget: "high", Source: "local", CreatedAt: now},
		{Gender: "female", Age: 22, Occasion: "night", Budget: "medium", Source: "ai", CreatedAt: now.Add(-time.Hour)},
		{Gender: "female", Age: 45, Occasion: "work", Budget: "luxury", Source: "local", CreatedAt: now.Add(-30 * 24 * time.Hour)},
	}
	for i := range subs {
		if err := db.CreateSubmission(ctx, &subs[i]); err != nil {
			t.Fatalf("CreateSubmission failed: %v", err)
		}
	}

	occasion := "work"
	results, _ := db.ListSubmissions(ctx, ListOptions{Occasion: &occasion})
	if len(results) != 2 {
		t.Errorf("expected 2 work submissions, got %d", len(results))
	}

	since := now.Add(-7 * 24 * time.Hour)
	results, _ = db.ListSubmissions(ctx, ListOptions{Since: &since})
	if len(results) != 2 {
		t.Errorf("expected 2 recent submissions, got %d", len(results))
	}

	results, _ = db.ListSubmissions(ctx, ListOptions{Limit: 1})
	if len(results) != 1 {
		t.Fatalf("expected 1 submission with limit, got %d", len(results))
	}
	if results[0].Age != 30 {
		t.Errorf("expected newest submission first, got age %d", results[0].Age)
	}
}

func TestGetStats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	subs := []Submission{
		{Gender: "male", Age: 30, Occasion: "work", Budget: "high", Source: "local", ResultCount: 3},
		{Gender: "female", Age: 20, Occasion: "night", Budget: "medium", Source: "ai", ResultCount: 3},
		{Gender: "female", Age: 40, Occasion: "work", Budget: "medium", Source: "local", ResultCount: 0},
	}
	for i := range subs {
		db.CreateSubmission(ctx, &subs[i])
	}

	stats, err := db.GetStats(ctx, nil)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.TotalSubmissions != 3 {
		t.Errorf("expected TotalSubmissions=3, got %d", stats.TotalSubmissions)
	}
	if stats.AverageAge != 30 {
		t.Errorf("expected AverageAge=30, got %v", stats.AverageAge)
	}
	if stats.AIServed != 1 || stats.LocalServed != 2 {
		t.Errorf("expected 1 ai / 2 local, got %d / %d", stats.AIServed, stats.LocalServed)
	}
	if stats.NoMatches != 1 {
		t.Errorf("expected NoMatches=1, got %d", stats.NoMatches)
	}
	if stats.ByOccasion["work"] != 2 {
		t.Errorf("expected 2 work submissions, got %d", stats.ByOccasion["work"])
	}
	if stats.ByGender["female"] != 2 {
		t.Errorf("expected 2 female submissions, got %d", stats.ByGender["female"])
	}
	if stats.ByBudget["medium"] != 2 {
		t.Errorf("expected 2 medium submissions, got %d", stats.ByBudget["medium"])
	}
}

func TestGetStats_Empty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	since := time.Now().Add(-time.Hour)
	stats, err := db.GetStats(context.Background(), &since)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalSubmissions != 0 || stats.AverageAge != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}
