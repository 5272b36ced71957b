package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/desertthunder/musicbrief/internal/shared"
	th "github.com/desertthunder/musicbrief/internal/testing"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "briefs")
		if err != nil {
			t.Fatalf("NextSequence() error = %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for table without sequence")
	}
}

func TestBriefRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		repo := NewBriefRepository(setupTestDB(t))
		record := models.NewBriefRecord("trap sombre", th.MustBrief(t, `{"style":"trap"}`), true)

		if err := repo.Create(record); err != nil {
			t.Fatalf("failed to create record: %v", err)
		}
		if record.ID() == "" {
			t.Error("record ID should be set after creation")
		}
		if record.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", record.Sequence())
		}
	})

	t.Run("Create Validation", func(t *testing.T) {
		repo := NewBriefRepository(setupTestDB(t))

		if err := repo.Create(models.NewBriefRecord("  ", th.MustBrief(t, `{}`), false)); err == nil {
			t.Error("expected validation error for blank idea")
		}
		if err := repo.Create(models.NewBriefRecord("idea", nil, false)); err == nil {
			t.Error("expected validation error for missing brief")
		}
	})

	t.Run("Get Keeps Key Order", func(t *testing.T) {
		repo := NewBriefRepository(setupTestDB(t))
		raw := `{"style":"afro","bpm":105,"key":"A minor","mix_tips":["warm bass"]}`
		record := models.NewBriefRecord("afro chill", th.MustBrief(t, raw), false)

		if err := repo.Create(record); err != nil {
			t.Fatalf("failed to create record: %v", err)
		}

		got, err := repo.Get(record.ID())
		if err != nil {
			t.Fatalf("failed to get record: %v", err)
		}
		if string(got.Brief().Raw()) != raw {
			t.Errorf("expected payload %s, got %s", raw, got.Brief().Raw())
		}
		if got.Idea() != "afro chill" || got.Streamed() {
			t.Errorf("unexpected record fields: idea=%q streamed=%v", got.Idea(), got.Streamed())
		}
		if got.CreatedAt().IsZero() {
			t.Error("expected created_at to round trip")
		}

		bySeq, err := repo.GetBySequence(record.Sequence())
		if err != nil {
			t.Fatalf("failed to get by sequence: %v", err)
		}
		if bySeq.ID() != record.ID() {
			t.Errorf("expected %s, got %s", record.ID(), bySeq.ID())
		}
	})

	t.Run("Get NotFound", func(t *testing.T) {
		repo := NewBriefRepository(setupTestDB(t))

		if _, err := repo.Get("nonexistent-id"); !errors.Is(err, shared.ErrBriefNotFound) {
			t.Errorf("expected ErrBriefNotFound, got %v", err)
		}
		if _, err := repo.GetBySequence(42); !errors.Is(err, shared.ErrBriefNotFound) {
			t.Errorf("expected ErrBriefNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewBriefRepository(setupTestDB(t))
		record := models.NewBriefRecord("lofi", th.MustBrief(t, `{"style":"lofi"}`), false)
		if err := repo.Create(record); err != nil {
			t.Fatalf("failed to create record: %v", err)
		}

		record.SetIdea("lofi podcast")
		record.SetBrief(th.MustBrief(t, `{"style":"lofi hip-hop","bpm":82}`))
		if err := repo.Update(record); err != nil {
			t.Fatalf("failed to update record: %v", err)
		}

		got, err := repo.Get(record.ID())
		if err != nil {
			t.Fatalf("failed to get record: %v", err)
		}
		if got.Idea() != "lofi podcast" {
			t.Errorf("expected updated idea, got %q", got.Idea())
		}
		if v, _ := got.Brief().Get("bpm"); v.Int() != 82 {
			t.Errorf("expected updated brief, got %s", got.Brief().Raw())
		}
	})

	t.Run("Update NotFound", func(t *testing.T) {
		repo := NewBriefRepository(setupTestDB(t))
		record := models.NewBriefRecord("ghost", th.MustBrief(t, `{}`), false)
		record.SetID("missing")

		if err := repo.Update(record); !errors.Is(err, shared.ErrBriefNotFound) {
			t.Errorf("expected ErrBriefNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewBriefRepository(setupTestDB(t))
		record := models.NewBriefRecord("edm intro", th.MustBrief(t, `{"style":"edm"}`), false)
		if err := repo.Create(record); err != nil {
			t.Fatalf("failed to create record: %v", err)
		}

		if err := repo.Delete(record.ID()); err != nil {
			t.Fatalf("failed to delete record: %v", err)
		}
		if _, err := repo.Get(record.ID()); !errors.Is(err, shared.ErrBriefNotFound) {
			t.Errorf("deleted record should not be found, got %v", err)
		}
		if err := repo.Delete(record.ID()); !errors.Is(err, shared.ErrBriefNotFound) {
			t.Errorf("second delete should fail with ErrBriefNotFound, got %v", err)
		}
	})

	t.Run("List And Latest", func(t *testing.T) {
		repo := NewBriefRepository(setupTestDB(t))
		ideas := []struct {
			idea     string
			streamed bool
		}{
			{"trap sombre", false},
			{"afro chill", true},
			{"trap lumineux", true},
			{"lofi podcast", false},
		}
		for _, i := range ideas {
			if err := repo.Create(models.NewBriefRecord(i.idea, th.MustBrief(t, `{"style":"x"}`), i.streamed)); err != nil {
				t.Fatalf("failed to create record: %v", err)
			}
		}

		all, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(all) != 4 || all[0].Idea() != "trap sombre" {
			t.Errorf("expected 4 records in sequence order, got %d", len(all))
		}

		trap, err := repo.List(map[string]any{"idea": "trap"})
		if err != nil {
			t.Fatalf("failed to list by idea: %v", err)
		}
		if len(trap) != 2 {
			t.Errorf("expected 2 trap records, got %d", len(trap))
		}

		streamed, err := repo.List(map[string]any{"streamed": true, "limit": 1})
		if err != nil {
			t.Fatalf("failed to list streamed: %v", err)
		}
		if len(streamed) != 1 || streamed[0].Idea() != "afro chill" {
			t.Errorf("expected first streamed record, got %d", len(streamed))
		}

		latest, err := repo.Latest(2)
		if err != nil {
			t.Fatalf("failed to get latest: %v", err)
		}
		if len(latest) != 2 || latest[0].Idea() != "lofi podcast" || latest[1].Idea() != "trap lumineux" {
			t.Errorf("expected newest first, got %d records", len(latest))
		}
	})
}
