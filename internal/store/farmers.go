package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

// ListFarmers returns all farmer records ordered by producer id.
func (s *Store) ListFarmers() ([]*model.FarmerClient, error) {
	rows, err := s.db.Query(`
		SELECT producer_id, advisor_id, first_name, last_name, farm_name,
		       total_area, status, last_contact
		FROM farmers ORDER BY producer_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list farmers: %w", err)
	}
	defer rows.Close()

	var farmers []*model.FarmerClient
	for rows.Next() {
		f := &model.FarmerClient{}
		var advisorID sql.NullInt64
		if err := rows.Scan(&f.ProducerID, &advisorID, &f.FirstName, &f.LastName,
			&f.FarmName, &f.TotalArea, &f.Status, &f.LastContact); err != nil {
			return nil, fmt.Errorf("scan farmer: %w", err)
		}
		if advisorID.Valid {
			f.AdvisorID = &advisorID.Int64
		}
		farmers = append(farmers, f)
	}
	return farmers, rows.Err()
}

// GetFarmer returns one farmer by producer id.
func (s *Store) GetFarmer(producerID string) (*model.FarmerClient, error) {
	f := &model.FarmerClient{}
	var advisorID sql.NullInt64
	err := s.db.QueryRow(`
		SELECT producer_id, advisor_id, first_name, last_name, farm_name,
		       total_area, status, last_contact
		FROM farmers WHERE producer_id = ?
	`, producerID).Scan(&f.ProducerID, &advisorID, &f.FirstName, &f.LastName,
		&f.FarmName, &f.TotalArea, &f.Status, &f.LastContact)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get farmer %s: %w", producerID, err)
	}
	if advisorID.Valid {
		f.AdvisorID = &advisorID.Int64
	}
	return f, nil
}

// UpsertFarmer inserts or updates a farmer record.
func (s *Store) UpsertFarmer(f *model.FarmerClient) error {
	var advisorID interface{}
	if f.AdvisorID != nil {
		advisorID = *f.AdvisorID
	}
	_, err := s.db.Exec(`
		INSERT INTO farmers (producer_id, advisor_id, first_name, last_name,
		                     farm_name, total_area, status, last_contact)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(producer_id) DO UPDATE SET
			advisor_id = excluded.advisor_id,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			farm_name = excluded.farm_name,
			total_area = excluded.total_area,
			status = excluded.status,
			last_contact = excluded.last_contact
	`, f.ProducerID, advisorID, f.FirstName, f.LastName,
		f.FarmName, f.TotalArea, f.Status, f.LastContact)
	if err != nil {
		return fmt.Errorf("upsert farmer %s: %w", f.ProducerID, err)
	}
	return nil
}

// GetFarmData assembles the engine's point-in-time snapshot: the farmer's
// profile plus every field with its full declaration history and crop parts.
func (s *Store) GetFarmData(producerID string) (*model.FarmData, error) {
	farmer, err := s.GetFarmer(producerID)
	if err != nil {
		return nil, err
	}

	fields, err := s.GetFields(producerID)
	if err != nil {
		return nil, err
	}

	return &model.FarmData{
		FarmName: farmer.FarmName,
		Profile: model.FarmProfile{
			ProducerID:  farmer.ProducerID,
			TotalAreaUR: farmer.TotalArea,
		},
		Fields: fields,
	}, nil
}

// GetFields returns a farmer's parcels with history and parts, ordered by id.
func (s *Store) GetFields(producerID string) ([]*model.Field, error) {
	rows, err := s.db.Query(`
		SELECT id, name, registration_number, commune, area, eligible_area, crop
		FROM fields WHERE farmer_id = ? ORDER BY id
	`, producerID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	var fields []*model.Field
	for rows.Next() {
		f := &model.Field{}
		if err := rows.Scan(&f.ID, &f.Name, &f.RegistrationNumber, &f.Commune,
			&f.Area, &f.EligibleArea, &f.Crop); err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, f := range fields {
		history, err := s.getHistory(f.ID)
		if err != nil {
			return nil, err
		}
		f.History = history
	}

	return fields, nil
}

// GetField returns one parcel with its history.
func (s *Store) GetField(fieldID string) (*model.Field, error) {
	f := &model.Field{}
	err := s.db.QueryRow(`
		SELECT id, name, registration_number, commune, area, eligible_area, crop
		FROM fields WHERE id = ?
	`, fieldID).Scan(&f.ID, &f.Name, &f.RegistrationNumber, &f.Commune,
		&f.Area, &f.EligibleArea, &f.Crop)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get field %s: %w", fieldID, err)
	}

	history, err := s.getHistory(f.ID)
	if err != nil {
		return nil, err
	}
	f.History = history
	return f, nil
}

// InsertField creates a parcel for a farmer.
func (s *Store) InsertField(producerID string, f *model.Field) error {
	_, err := s.db.Exec(`
		INSERT INTO fields (id, farmer_id, name, registration_number, commune,
		                    area, eligible_area, crop)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, f.ID, producerID, f.Name, f.RegistrationNumber, f.Commune,
		f.Area, f.EligibleArea, f.Crop)
	if err != nil {
		return fmt.Errorf("insert field %s: %w", f.ID, err)
	}
	return nil
}

// UpdateField overwrites a parcel's registry attributes.
func (s *Store) UpdateField(f *model.Field) error {
	res, err := s.db.Exec(`
		UPDATE fields SET name = ?, registration_number = ?, commune = ?,
		       area = ?, eligible_area = ?, crop = ?
		WHERE id = ?
	`, f.Name, f.RegistrationNumber, f.Commune, f.Area, f.EligibleArea, f.Crop, f.ID)
	if err != nil {
		return fmt.Errorf("update field %s: %w", f.ID, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertHistoryEntry writes one (field, year) declaration, replacing any
// previous entry for that year together with its crop parts.
func (s *Store) UpsertHistoryEntry(fieldID string, entry *model.HistoryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	schemes, err := json.Marshal(stringsOrEmpty(entry.AppliedEcoSchemes))
	if err != nil {
		return fmt.Errorf("marshal schemes: %w", err)
	}

	var soilPH interface{}
	if entry.SoilPH != nil {
		soilPH = *entry.SoilPH
	}

	if _, err := tx.Exec(`
		INSERT INTO field_history (field_id, year, crop, area, eligible_area,
		                           applied_eco_schemes, liming_date, soil_ph)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(field_id, year) DO UPDATE SET
			crop = excluded.crop,
			area = excluded.area,
			eligible_area = excluded.eligible_area,
			applied_eco_schemes = excluded.applied_eco_schemes,
			liming_date = excluded.liming_date,
			soil_ph = excluded.soil_ph
	`, fieldID, entry.Year, entry.Crop, entry.Area, entry.EligibleArea,
		string(schemes), entry.LimingDate, soilPH); err != nil {
		return fmt.Errorf("upsert history (%s, %d): %w", fieldID, entry.Year, err)
	}

	var historyID int64
	if err := tx.QueryRow(`
		SELECT id FROM field_history WHERE field_id = ? AND year = ?
	`, fieldID, entry.Year).Scan(&historyID); err != nil {
		return fmt.Errorf("resolve history id: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM crop_parts WHERE history_id = ?`, historyID); err != nil {
		return fmt.Errorf("clear crop parts: %w", err)
	}

	for i, part := range entry.CropParts {
		partSchemes, err := json.Marshal(stringsOrEmpty(part.EcoSchemes))
		if err != nil {
			return fmt.Errorf("marshal part schemes: %w", err)
		}
		if _, err := tx.Exec(`
			INSERT INTO crop_parts (history_id, part_index, designation, crop, area, eco_schemes)
			VALUES (?, ?, ?, ?, ?, ?)
		`, historyID, i, part.Designation, part.Crop, part.Area, string(partSchemes)); err != nil {
			return fmt.Errorf("insert crop part: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteHistoryEntry removes one (field, year) declaration. Parcels are never
// hard-deleted, only their per-year entries.
func (s *Store) DeleteHistoryEntry(fieldID string, year int) error {
	res, err := s.db.Exec(`
		DELETE FROM field_history WHERE field_id = ? AND year = ?
	`, fieldID, year)
	if err != nil {
		return fmt.Errorf("delete history (%s, %d): %w", fieldID, year, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) getHistory(fieldID string) ([]*model.HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, year, crop, area, eligible_area, applied_eco_schemes,
		       liming_date, soil_ph
		FROM field_history WHERE field_id = ? ORDER BY year DESC
	`, fieldID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	type historyRow struct {
		id    int64
		entry *model.HistoryEntry
	}

	var history []historyRow
	for rows.Next() {
		entry := &model.HistoryEntry{}
		var id int64
		var schemes string
		var soilPH sql.NullFloat64
		if err := rows.Scan(&id, &entry.Year, &entry.Crop, &entry.Area,
			&entry.EligibleArea, &schemes, &entry.LimingDate, &soilPH); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if err := json.Unmarshal([]byte(schemes), &entry.AppliedEcoSchemes); err != nil {
			return nil, fmt.Errorf("decode schemes: %w", err)
		}
		if soilPH.Valid {
			entry.SoilPH = &soilPH.Float64
		}
		history = append(history, historyRow{id: id, entry: entry})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, h := range history {
		parts, err := s.getCropParts(h.id)
		if err != nil {
			return nil, err
		}
		h.entry.CropParts = parts
		// The stored crop column is only a fallback. Once parts exist the
		// label is derived from them, so split entries read back as the
		// mixed label and single-part entries as that part's crop.
		h.entry.Crop = h.entry.DeclaredCrop()
	}

	entries := make([]*model.HistoryEntry, 0, len(history))
	for _, h := range history {
		entries = append(entries, h.entry)
	}
	return entries, nil
}

func (s *Store) getCropParts(historyID int64) ([]model.CropPart, error) {
	rows, err := s.db.Query(`
		SELECT designation, crop, area, eco_schemes
		FROM crop_parts WHERE history_id = ? ORDER BY part_index
	`, historyID)
	if err != nil {
		return nil, fmt.Errorf("list crop parts: %w", err)
	}
	defer rows.Close()

	var parts []model.CropPart
	for rows.Next() {
		var p model.CropPart
		var schemes string
		if err := rows.Scan(&p.Designation, &p.Crop, &p.Area, &schemes); err != nil {
			return nil, fmt.Errorf("scan crop part: %w", err)
		}
		if err := json.Unmarshal([]byte(schemes), &p.EcoSchemes); err != nil {
			return nil, fmt.Errorf("decode part schemes: %w", err)
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

// stringsOrEmpty keeps JSON columns as [] instead of null.
func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
