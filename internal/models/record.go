package models

import (
	"fmt"
	"strings"
	"time"
)

// BriefRecord is a generated brief saved to local history.
type BriefRecord struct {
	id        string
	sequence  int
	idea      string
	brief     *Brief
	streamed  bool
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewBriefRecord creates a history record for a brief generated from idea.
func NewBriefRecord(idea string, brief *Brief, streamed bool) *BriefRecord {
	now := time.Now()
	return &BriefRecord{
		idea:      idea,
		brief:     brief,
		streamed:  streamed,
		createdAt: now,
		updatedAt: now,
	}
}

func (r *BriefRecord) ID() string { return r.id }
func (r *BriefRecord) Sequence() int { return r.sequence }
func (r *BriefRecord) Idea() string { return r.idea }
func (r *BriefRecord) Brief() *Brief { return r.brief }
func (r *BriefRecord) Streamed() bool { return r.streamed }
func (r *BriefRecord) CreatedAt() time.Time { return r.createdAt }
func (r *BriefRecord) UpdatedAt() time.Time { return r.updatedAt }
func (r *BriefRecord) DeletedAt() *time.Time { return r.deletedAt }

func (r *BriefRecord) SetID(id string) { r.id = id }
func (r *BriefRecord) SetSequence(seq int) { r.sequence = seq }
func (r *BriefRecord) SetIdea(idea string) { r.idea = idea }
func (r *BriefRecord) SetBrief(b *Brief) { r.brief = b }
func (r *BriefRecord) SetCreatedAt(t time.Time) { r.createdAt = t }
func (r *BriefRecord) SetUpdatedAt(t time.Time) { r.updatedAt = t }
func (r *BriefRecord) SetDeletedAt(t *time.Time) { r.deletedAt = t }

// Validate checks that the record has an ID, a non-blank idea, and a brief.
func (r *BriefRecord) Validate() error {
	if r.id == "" {
		return fmt.Errorf("brief record ID is required")
	}
	if strings.TrimSpace(r.idea) == "" {
		return fmt.Errorf("brief record idea is required")
	}
	if r.brief == nil {
		return fmt.Errorf("brief record has no brief")
	}
	return nil
}

var _ Model = (*BriefRecord)(nil)
