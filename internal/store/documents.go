package store

import (
	"database/sql"
	"fmt"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

// ListDocuments returns a farmer's uploaded documents, newest first.
func (s *Store) ListDocuments(farmerID string) ([]model.FarmerDocument, error) {
	rows, err := s.db.Query(`
		SELECT id, farmer_id, name, type, category, campaign_year, size, upload_date
		FROM documents WHERE farmer_id = ? ORDER BY upload_date DESC, id
	`, farmerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []model.FarmerDocument
	for rows.Next() {
		var d model.FarmerDocument
		if err := rows.Scan(&d.ID, &d.FarmerID, &d.Name, &d.Type, &d.Category,
			&d.CampaignYear, &d.Size, &d.UploadDate); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// GetDocument returns one document by id.
func (s *Store) GetDocument(id string) (*model.FarmerDocument, error) {
	d := &model.FarmerDocument{}
	err := s.db.QueryRow(`
		SELECT id, farmer_id, name, type, category, campaign_year, size, upload_date
		FROM documents WHERE id = ?
	`, id).Scan(&d.ID, &d.FarmerID, &d.Name, &d.Type, &d.Category,
		&d.CampaignYear, &d.Size, &d.UploadDate)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return d, nil
}

// InsertDocument registers an uploaded document.
func (s *Store) InsertDocument(d *model.FarmerDocument) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (id, farmer_id, name, type, category, campaign_year, size, upload_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.FarmerID, d.Name, d.Type, d.Category, d.CampaignYear, d.Size, d.UploadDate)
	if err != nil {
		return fmt.Errorf("insert document %s: %w", d.ID, err)
	}
	return nil
}
