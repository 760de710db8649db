package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vmunix/newfile/internal/generator"
)

// Entry is one created file.
type Entry struct {
	ID           int64     `json:"id"`
	SnapshotID   string    `json:"snapshot_id,omitempty"`
	FilePath     string    `json:"file_path"`
	FileName     string    `json:"file_name"`
	FileSize     int64     `json:"file_size"`
	UsedTemplate bool      `json:"used_template"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryStore records files created by the generator.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore creates a new history store.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

var _ generator.HistoryRecorder = (*HistoryStore)(nil)

// RecordCreation stores a successful result. Unknown snapshot IDs are
// recorded without a snapshot reference.
func (h *HistoryStore) RecordCreation(ctx context.Context, r *generator.Result) error {
	if r == nil || !r.Success {
		return nil
	}

	snapshotID := sql.NullString{String: r.SnapshotID, Valid: r.SnapshotID != ""}
	if snapshotID.Valid {
		var n int
		err := h.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots WHERE id = ?", r.SnapshotID).Scan(&n)
		if err != nil {
			return fmt.Errorf("record creation: %w", err)
		}
		snapshotID.Valid = n > 0
	}

	_, err := h.db.ExecContext(ctx, `
		INSERT INTO history (snapshot_id, file_path, file_name, file_size, used_template, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		snapshotID, r.FilePath, r.FileName, r.FileSize, r.UsedTemplate, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("record creation of %s: %w", r.FileName, mapSQLiteError(err))
	}
	return nil
}

// List returns up to limit entries, newest first. A limit of zero returns all.
func (h *HistoryStore) List(ctx context.Context, limit int) ([]*Entry, error) {
	query := `SELECT id, snapshot_id, file_path, file_name, file_size, used_template, created_at
		FROM history ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := h.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		var (
			e  Entry
			id sql.NullString
		)
		if err := rows.Scan(&e.ID, &id, &e.FilePath, &e.FileName, &e.FileSize, &e.UsedTemplate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.SnapshotID = id.String
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Clear deletes all history entries and returns how many were removed.
func (h *HistoryStore) Clear(ctx context.Context) (int64, error) {
	result, err := h.db.ExecContext(ctx, "DELETE FROM history")
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return result.RowsAffected()
}
