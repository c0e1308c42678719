package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"gearlog-server/internal/domain"
)

// ReplacementRepository is the append-only replacement ledger. Rows are
// never updated; the only delete path is the per-category history reset.
type ReplacementRepository interface {
	Append(category, date string) error
	Latest(category string) (*domain.ReplacementEvent, error)
	ListDates(category string) ([]string, error)
	DeleteByCategory(category string) error
	DeleteAll() error
}

type replacementRepository struct {
	db *sql.DB
}

func NewReplacementRepository(db *sql.DB) ReplacementRepository {
	return &replacementRepository{db: db}
}

func (r *replacementRepository) Append(category, date string) error {
	_, err := r.db.Exec(
		`INSERT INTO component_replacements (category, replacement_date) VALUES (?, ?)`,
		category, date)
	if err != nil {
		return fmt.Errorf("failed to record replacement: %w", err)
	}
	return nil
}

// Latest returns the most recently inserted ledger row for the category.
// Ordering is by insertion, not by replacement date: a backdated entry
// added later wins over an earlier same-day entry.
func (r *replacementRepository) Latest(category string) (*domain.ReplacementEvent, error) {
	var event domain.ReplacementEvent
	err := r.db.QueryRow(`
		SELECT id, category, replacement_date, created_at
		FROM component_replacements
		WHERE category = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, category).
		Scan(&event.ID, &event.Category, &event.ReplacementDate, &event.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest replacement: %w", err)
	}
	return &event, nil
}

func (r *replacementRepository) ListDates(category string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT replacement_date FROM component_replacements
		WHERE category = ?
		ORDER BY replacement_date DESC`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list replacements: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan replacement date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *replacementRepository) DeleteByCategory(category string) error {
	if _, err := r.db.Exec(`DELETE FROM component_replacements WHERE category = ?`, category); err != nil {
		return fmt.Errorf("failed to reset history: %w", err)
	}
	return nil
}

func (r *replacementRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM component_replacements`); err != nil {
		return fmt.Errorf("failed to delete replacements: %w", err)
	}
	return nil
}
