package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/musicbrief/internal/formatter"
	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/desertthunder/musicbrief/internal/repositories"
	"github.com/desertthunder/musicbrief/internal/shared"
	"github.com/desertthunder/musicbrief/internal/ui"
	"github.com/urfave/cli/v3"
)

type historyEntry struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	Idea      string `json:"idea"`
	Sections  int    `json:"sections"`
	Streamed  bool   `json:"streamed"`
	CreatedAt string `json:"created_at"`
}

// HistoryList prints saved briefs, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.openHistory()
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	var records []*models.BriefRecord
	if idea := cmd.String("idea"); idea != "" {
		records, err = repo.List(map[string]any{"idea": idea, "limit": limit})
	} else {
		records, err = repo.Latest(limit)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		entries := make([]historyEntry, 0, len(records))
		for _, rec := range records {
			entries = append(entries, historyEntry{
				ID:        rec.ID(),
				Number:    rec.Sequence(),
				Idea:      rec.Idea(),
				Sections:  rec.Brief().Len(),
				Streamed:  rec.Streamed(),
				CreatedAt: rec.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
			})
		}
		return r.writeJSON(entries, true)
	}

	if len(records) == 0 {
		r.writePlain("No saved briefs yet.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Saved briefs (%d)", len(records)))
	for _, rec := range records {
		r.writePlain("#%-4d %s  %s (%d sections)\n",
			rec.Sequence(), rec.CreatedAt().Format("2006-01-02 15:04"), shared.Truncate(rec.Idea(), 50), rec.Brief().Len())
	}
	return nil
}

// HistoryShow prints one saved brief as cards, JSON, or Markdown.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.openHistory()
	if err != nil {
		return err
	}

	rec, err := findRecord(repo, cmd.Args().First())
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("json"):
		data, err := formatter.ExportToJSON(rec.Brief())
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	case cmd.Bool("markdown"):
		data, err := formatter.ExportToMarkdown(rec.Brief(), rec.Idea(), ui.SectionTitle)
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	}

	r.writePlain("#%d  %s\n> %s\n\n", rec.Sequence(), rec.CreatedAt().Format("2006-01-02 15:04"), rec.Idea())
	r.writePlain("%s\n", ui.RenderBrief(rec.Brief(), cardWidth))
	return nil
}

// HistoryDelete removes one saved brief.
func (r *Runner) HistoryDelete(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.openHistory()
	if err != nil {
		return err
	}

	rec, err := findRecord(repo, cmd.Args().First())
	if err != nil {
		return err
	}
	if err := repo.Delete(rec.ID()); err != nil {
		return err
	}

	r.logger.Info("brief deleted", "id", rec.ID())
	r.writePlain("✓ Deleted brief #%d (%s)\n", rec.Sequence(), shared.Truncate(rec.Idea(), 50))
	return nil
}

// findRecord resolves ref as a history number when it is numeric, otherwise as an ID.
func findRecord(repo *repositories.BriefRepository, ref string) (*models.BriefRecord, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "#")
	if ref == "" {
		return nil, fmt.Errorf("%w: brief ID or number is required", shared.ErrMissingArgument)
	}
	if n, err := strconv.Atoi(ref); err == nil {
		return repo.GetBySequence(n)
	}
	return repo.Get(ref)
}
