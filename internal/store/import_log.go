package store

import "fmt"

// ImportLogEntry one registry-import run.
type ImportLogEntry struct {
	ID             string `json:"id"`
	Filename       string `json:"filename"`
	Template       string `json:"template"`
	ImportedAt     string `json:"importedAt"`
	FieldsCreated  int    `json:"fieldsCreated"`
	EntriesCreated int    `json:"entriesCreated"`
	RowsSkipped    int    `json:"rowsSkipped"`
	Message        string `json:"message"`
}

// InsertImportLog records one import run.
func (s *Store) InsertImportLog(e *ImportLogEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO import_log (id, filename, template, imported_at,
		                        fields_created, entries_created, rows_skipped, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Filename, e.Template, e.ImportedAt,
		e.FieldsCreated, e.EntriesCreated, e.RowsSkipped, e.Message)
	if err != nil {
		return fmt.Errorf("insert import log: %w", err)
	}
	return nil
}

// ListImportLog returns import runs, newest first.
func (s *Store) ListImportLog() ([]ImportLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, filename, template, imported_at, fields_created,
		       entries_created, rows_skipped, message
		FROM import_log ORDER BY imported_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list import log: %w", err)
	}
	defer rows.Close()

	var entries []ImportLogEntry
	for rows.Next() {
		var e ImportLogEntry
		if err := rows.Scan(&e.ID, &e.Filename, &e.Template, &e.ImportedAt,
			&e.FieldsCreated, &e.EntriesCreated, &e.RowsSkipped, &e.Message); err != nil {
			return nil, fmt.Errorf("scan import log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
