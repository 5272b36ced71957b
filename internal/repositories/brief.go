package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/desertthunder/musicbrief/internal/shared"
)

const briefColumns = "id, sequence, idea, payload, streamed, created_at, updated_at, deleted_at"

// BriefRepository implements [models.Repository] for [models.BriefRecord] persistence.
type BriefRepository struct {
	db *sql.DB
}

// NewBriefRepository creates a new [BriefRepository] with the given database connection
func NewBriefRepository(db *sql.DB) *BriefRepository {
	return &BriefRepository{db: db}
}

// Create inserts a new record with a generated ID and sequence
func (r *BriefRepository) Create(record *models.BriefRecord) error {
	sequence, err := NextSequence(r.db, "briefs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	record.SetID(shared.GenerateID())
	record.SetSequence(sequence)

	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO briefs (id, sequence, idea, payload, streamed, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, record.ID(), sequence, record.Idea(), string(record.Brief().Raw()),
		record.Streamed(), record.CreatedAt(), record.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert brief: %w", err)
	}

	return nil
}

// Get retrieves a record by ID, excluding soft-deleted records
func (r *BriefRepository) Get(id string) (*models.BriefRecord, error) {
	query := "SELECT " + briefColumns + " FROM briefs WHERE id = ? AND deleted_at IS NULL"
	return r.getOne(query, id, id)
}

// GetBySequence retrieves a record by its sequence number, excluding soft-deleted records
func (r *BriefRepository) GetBySequence(sequence int) (*models.BriefRecord, error) {
	query := "SELECT " + briefColumns + " FROM briefs WHERE sequence = ? AND deleted_at IS NULL"
	return r.getOne(query, sequence, fmt.Sprintf("#%d", sequence))
}

func (r *BriefRepository) getOne(query string, arg any, label string) (*models.BriefRecord, error) {
	record, err := scanBrief(r.db.QueryRow(query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrBriefNotFound, label)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query brief: %w", err)
	}
	return record, nil
}

// Update replaces the idea and brief of an existing record
func (r *BriefRepository) Update(record *models.BriefRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	record.SetUpdatedAt(now)

	query := `
		UPDATE briefs
		SET idea = ?, payload = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, record.Idea(), string(record.Brief().Raw()), now, record.ID())
	if err != nil {
		return fmt.Errorf("failed to update brief: %w", err)
	}

	return expectOneRow(result, record.ID())
}

// Delete soft-deletes a record by ID
func (r *BriefRepository) Delete(id string) error {
	query := `
		UPDATE briefs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete brief: %w", err)
	}

	return expectOneRow(result, id)
}

// List retrieves records matching the given criteria in sequence order, excluding soft-deleted records.
//
// Supported criteria: "idea" (substring match), "streamed" (bool), "limit" (int).
func (r *BriefRepository) List(criteria map[string]any) ([]*models.BriefRecord, error) {
	query := "SELECT " + briefColumns + " FROM briefs WHERE deleted_at IS NULL"
	args := []any{}

	if idea, ok := criteria["idea"].(string); ok && idea != "" {
		query += " AND idea LIKE ?"
		args = append(args, "%"+idea+"%")
	}
	if streamed, ok := criteria["streamed"].(bool); ok {
		query += " AND streamed = ?"
		args = append(args, streamed)
	}

	query += " ORDER BY sequence ASC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return r.query(query, args...)
}

// Latest returns up to limit records, newest first
func (r *BriefRepository) Latest(limit int) ([]*models.BriefRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	query := "SELECT " + briefColumns + " FROM briefs WHERE deleted_at IS NULL ORDER BY sequence DESC LIMIT ?"
	return r.query(query, limit)
}

func (r *BriefRepository) query(query string, args ...any) ([]*models.BriefRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query briefs: %w", err)
	}
	defer rows.Close()

	var records []*models.BriefRecord
	for rows.Next() {
		record, err := scanBrief(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brief: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

func scanBrief(row rowScanner) (*models.BriefRecord, error) {
	var (
		id        string
		sequence  int
		idea      string
		payload   string
		streamed  bool
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := row.Scan(&id, &sequence, &idea, &payload, &streamed, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	brief, err := models.ParseBrief([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: stored payload for %s: %v", shared.ErrInvalidBrief, id, err)
	}

	record := models.NewBriefRecord(idea, brief, streamed)
	record.SetID(id)
	record.SetSequence(sequence)
	record.SetCreatedAt(createdAt)
	record.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		record.SetDeletedAt(&deletedAt.Time)
	}

	return record, nil
}

func expectOneRow(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrBriefNotFound, id)
	}
	return nil
}

var _ models.Repository[*models.BriefRecord] = (*BriefRepository)(nil)
