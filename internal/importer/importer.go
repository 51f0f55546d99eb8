package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/KDZFoundation/agrooptima/internal/model"
	"github.com/KDZFoundation/agrooptima/internal/store"
)

// Importer loads parcel-registry and crop-declaration files into the store.
type Importer struct {
	store    *store.Store
	logger   *zap.Logger
	validate *validator.Validate
}

// New creates an importer. A nil logger disables logging.
func New(st *store.Store, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		store:    st,
		logger:   logger,
		validate: validator.New(),
	}
}

// Result summarizes one import run.
type Result struct {
	LogID          string   `json:"logId"`
	Filename       string   `json:"filename"`
	Template       string   `json:"template"`
	FieldsCreated  int      `json:"fieldsCreated"`
	FieldsUpdated  int      `json:"fieldsUpdated"`
	EntriesCreated int      `json:"entriesCreated"`
	RowsSkipped    int      `json:"rowsSkipped"`
	RowErrors      []string `json:"rowErrors,omitempty"`
}

// maxRowErrors caps per-row messages carried back to the client.
const maxRowErrors = 20

type parcelRow struct {
	Name               string  `validate:"required"`
	RegistrationNumber string  `validate:"required"`
	Area               float64 `validate:"gt=0"`
	EligibleArea       float64 `validate:"gte=0"`
	Commune            string
}

type cropRow struct {
	RegistrationNumber string `validate:"required"`
	Year               int    `validate:"gte=2000,lte=2100"`
	Crop               string `validate:"required"`
	EcoSchemes         []string
}

// Import reads the file, maps its columns through the template and writes
// the rows to the farmer's registry. defaultYear fills crop rows whose
// template carries no year column.
func (imp *Importer) Import(producerID, filename string, r io.Reader, tpl MappingTemplate, defaultYear int) (*Result, error) {
	if _, err := imp.store.GetFarmer(producerID); err != nil {
		return nil, fmt.Errorf("farmer %s: %w", producerID, err)
	}

	rows, err := readRows(filename, r, tpl.Separator)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("file %s has no data rows", filename)
	}

	cols, err := mapColumns(rows[0], tpl)
	if err != nil {
		return nil, err
	}

	result := &Result{
		LogID:    uuid.NewString(),
		Filename: filepath.Base(filename),
		Template: tpl.ID,
	}

	switch tpl.Type {
	case TemplateParcels:
		err = imp.importParcels(producerID, rows[1:], cols, result)
	case TemplateCrops:
		err = imp.importCrops(producerID, rows[1:], cols, defaultYear, result)
	default:
		return nil, fmt.Errorf("unknown template type %q", tpl.Type)
	}
	if err != nil {
		return nil, err
	}

	if logErr := imp.store.InsertImportLog(&store.ImportLogEntry{
		ID:             result.LogID,
		Filename:       result.Filename,
		Template:       tpl.ID,
		ImportedAt:     time.Now().Format(time.RFC3339),
		FieldsCreated:  result.FieldsCreated,
		EntriesCreated: result.EntriesCreated,
		RowsSkipped:    result.RowsSkipped,
		Message:        strings.Join(result.RowErrors, "; "),
	}); logErr != nil {
		imp.logger.Warn("import log write failed", zap.Error(logErr))
	}

	imp.logger.Info("import finished",
		zap.String("file", result.Filename),
		zap.String("template", tpl.ID),
		zap.Int("fields_created", result.FieldsCreated),
		zap.Int("entries_created", result.EntriesCreated),
		zap.Int("rows_skipped", result.RowsSkipped))

	return result, nil
}

func (imp *Importer) importParcels(producerID string, rows [][]string, cols map[string]int, result *Result) error {
	existing, err := imp.fieldsByRegistration(producerID)
	if err != nil {
		return err
	}

	for i, row := range rows {
		pr := parcelRow{
			Name:               cell(row, cols, KeyName),
			RegistrationNumber: cell(row, cols, KeyRegistrationNumber),
			Commune:            cell(row, cols, KeyCommune),
		}
		pr.Area = parseArea(cell(row, cols, KeyArea))
		pr.EligibleArea = parseArea(cell(row, cols, KeyEligibleArea))
		if pr.Name == "" {
			pr.Name = pr.RegistrationNumber
		}

		if err := imp.validate.Struct(pr); err != nil {
			skipRow(result, fmt.Sprintf("wiersz %d: %v", i+2, err))
			continue
		}

		if field, ok := existing[pr.RegistrationNumber]; ok {
			field.Name = pr.Name
			field.Area = pr.Area
			field.EligibleArea = pr.EligibleArea
			if pr.Commune != "" {
				field.Commune = pr.Commune
			}
			if err := imp.store.UpdateField(field); err != nil {
				return err
			}
			result.FieldsUpdated++
			continue
		}

		field := &model.Field{
			ID:                 uuid.NewString(),
			Name:               pr.Name,
			RegistrationNumber: pr.RegistrationNumber,
			Commune:            pr.Commune,
			Area:               pr.Area,
			EligibleArea:       pr.EligibleArea,
		}
		if err := imp.store.InsertField(producerID, field); err != nil {
			return err
		}
		existing[pr.RegistrationNumber] = field
		result.FieldsCreated++
	}
	return nil
}

func (imp *Importer) importCrops(producerID string, rows [][]string, cols map[string]int, defaultYear int, result *Result) error {
	existing, err := imp.fieldsByRegistration(producerID)
	if err != nil {
		return err
	}

	for i, row := range rows {
		cr := cropRow{
			RegistrationNumber: cell(row, cols, KeyRegistrationNumber),
			Crop:               cell(row, cols, KeyCrop),
			Year:               defaultYear,
			EcoSchemes:         splitSchemes(cell(row, cols, KeyEcoSchemes)),
		}
		if raw := cell(row, cols, KeyYear); raw != "" {
			year, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				skipRow(result, fmt.Sprintf("wiersz %d: nieprawidłowy rok %q", i+2, raw))
				continue
			}
			cr.Year = year
		}

		if err := imp.validate.Struct(cr); err != nil {
			skipRow(result, fmt.Sprintf("wiersz %d: %v", i+2, err))
			continue
		}

		field, ok := existing[cr.RegistrationNumber]
		if !ok {
			skipRow(result, fmt.Sprintf("wiersz %d: brak działki %q w ewidencji", i+2, cr.RegistrationNumber))
			continue
		}

		entry := &model.HistoryEntry{
			Year:              cr.Year,
			Crop:              cr.Crop,
			Area:              field.Area,
			EligibleArea:      field.EligibleArea,
			AppliedEcoSchemes: cr.EcoSchemes,
		}
		if err := imp.store.UpsertHistoryEntry(field.ID, entry); err != nil {
			return err
		}
		result.EntriesCreated++
	}
	return nil
}

func (imp *Importer) fieldsByRegistration(producerID string) (map[string]*model.Field, error) {
	fields, err := imp.store.GetFields(producerID)
	if err != nil {
		return nil, err
	}
	byReg := make(map[string]*model.Field, len(fields))
	for _, f := range fields {
		byReg[f.RegistrationNumber] = f
	}
	return byReg, nil
}

// readRows loads the file into a row matrix. XLSX files use their first
// sheet; anything else is treated as separated text.
func readRows(filename string, r io.Reader, separator string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("open xlsx %s: %w", filename, err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx %s has no sheets", filename)
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
		}
		return rows, nil
	}

	reader := csv.NewReader(r)
	if separator != "" {
		reader.Comma = []rune(separator)[0]
	}
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", filename, err)
	}
	return rows, nil
}

// mapColumns resolves the template's header labels against the file's
// header row. A required key without a matching column fails the import.
func mapColumns(header []string, tpl MappingTemplate) (map[string]int, error) {
	cols := make(map[string]int, len(tpl.Mappings))
	for key, label := range tpl.Mappings {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(label)) {
				cols[key] = i
				break
			}
		}
	}

	required := []string{KeyRegistrationNumber}
	if tpl.Type == TemplateParcels {
		required = append(required, KeyArea)
	} else {
		required = append(required, KeyCrop)
	}
	for _, key := range required {
		if _, ok := cols[key]; !ok {
			return nil, fmt.Errorf("column %q (%s) not found in header", tpl.Mappings[key], key)
		}
	}
	return cols, nil
}

func cell(row []string, cols map[string]int, key string) string {
	idx, ok := cols[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseArea accepts both decimal comma and decimal point.
func parseArea(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	raw = strings.ReplaceAll(raw, " ", "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func splitSchemes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var schemes []string
	for _, part := range strings.Split(raw, ",") {
		if code := strings.ToUpper(strings.TrimSpace(part)); code != "" {
			schemes = append(schemes, code)
		}
	}
	return schemes
}

func skipRow(result *Result, msg string) {
	result.RowsSkipped++
	if len(result.RowErrors) < maxRowErrors {
		result.RowErrors = append(result.RowErrors, msg)
	}
}
