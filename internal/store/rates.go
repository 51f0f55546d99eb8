package store

import (
	"encoding/json"
	"fmt"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

// InsertRates batch-inserts rate rows inside one transaction.
func (s *Store) InsertRates(rates []model.SubsidyRate) error {
	if len(rates) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO subsidy_rates (
			id, name, short_name, rate, unit, category, year, points,
			conflicts_with, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			short_name = excluded.short_name,
			rate = excluded.rate,
			unit = excluded.unit,
			category = excluded.category,
			year = excluded.year,
			points = excluded.points,
			conflicts_with = excluded.conflicts_with,
			description = excluded.description
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range rates {
		conflicts, err := json.Marshal(stringsOrEmpty(r.ConflictsWith))
		if err != nil {
			return fmt.Errorf("marshal conflicts for %s: %w", r.ID, err)
		}
		if _, err := stmt.Exec(r.ID, r.Name, r.ShortName, r.Rate, r.Unit,
			r.Category, r.Year, r.Points, string(conflicts), r.Description); err != nil {
			return fmt.Errorf("insert rate %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AllRates returns every rate row, ordered by year then id.
func (s *Store) AllRates() ([]model.SubsidyRate, error) {
	return s.queryRates(`
		SELECT id, name, short_name, rate, unit, category, year, points,
		       conflicts_with, description
		FROM subsidy_rates ORDER BY year, id
	`)
}

// GetRatesByYear returns the rate table of one campaign year.
func (s *Store) GetRatesByYear(year int) ([]model.SubsidyRate, error) {
	return s.queryRates(`
		SELECT id, name, short_name, rate, unit, category, year, points,
		       conflicts_with, description
		FROM subsidy_rates WHERE year = ? ORDER BY id
	`, year)
}

// CountRates returns the number of stored rate rows.
func (s *Store) CountRates() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM subsidy_rates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rates: %w", err)
	}
	return n, nil
}

func (s *Store) queryRates(query string, args ...interface{}) ([]model.SubsidyRate, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rates: %w", err)
	}
	defer rows.Close()

	var rates []model.SubsidyRate
	for rows.Next() {
		var r model.SubsidyRate
		var conflicts string
		if err := rows.Scan(&r.ID, &r.Name, &r.ShortName, &r.Rate, &r.Unit,
			&r.Category, &r.Year, &r.Points, &conflicts, &r.Description); err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}
		if err := json.Unmarshal([]byte(conflicts), &r.ConflictsWith); err != nil {
			return nil, fmt.Errorf("decode conflicts: %w", err)
		}
		if len(r.ConflictsWith) == 0 {
			r.ConflictsWith = nil
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}
