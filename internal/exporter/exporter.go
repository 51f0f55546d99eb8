package exporter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

// Exporter renders a farm analysis report as an XLSX workbook.
type Exporter struct{}

func New() *Exporter {
	return &Exporter{}
}

const (
	sheetSummary = "Raport"
	sheetIssues  = "Uwagi"
	sheetParcels = "Działki"
)

// Export builds the workbook. The caller owns the returned file and is
// responsible for closing it.
func (e *Exporter) Export(farm *model.FarmData, report *model.FarmAnalysisReport) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{sheetIssues, sheetParcels} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create style: %w", err)
	}

	if err := e.fillSummary(f, headerStyle, farm, report); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillIssues(f, headerStyle, report); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillParcels(f, headerStyle, farm, report.Year); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func (e *Exporter) fillSummary(f *excelize.File, headerStyle int, farm *model.FarmData, report *model.FarmAnalysisReport) error {
	rows := [][]interface{}{
		{"Gospodarstwo", farm.FarmName},
		{"Numer producenta", farm.Profile.ProducerID},
		{"Kampania", report.Year},
		{"Powierzchnia UR [ha]", farm.Profile.TotalAreaUR},
		{"Suma punktów", report.TotalPoints},
		{"Punkty wymagane", report.RequiredPoints},
		{"Warunek wejścia", entryConditionLabel(report.IsEntryConditionMet)},
		{"Szacowana wartość [PLN]", report.TotalEstimatedValue},
		{},
		{"Ekoschemat", "Powierzchnia [ha]", "Punkty", "Wartość [PLN]"},
	}
	for i, row := range rows {
		if err := setRow(f, sheetSummary, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetSummary, "A10", "D10", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	codes := make([]string, 0, len(report.EcoSchemes))
	for code := range report.EcoSchemes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for i, code := range codes {
		calc := report.EcoSchemes[code]
		if err := setRow(f, sheetSummary, 11+i, []interface{}{
			code, calc.TotalArea, calc.TotalPoints, calc.EstimatedValue,
		}); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetSummary, "A", "A", 26)
}

func (e *Exporter) fillIssues(f *excelize.File, headerStyle int, report *model.FarmAnalysisReport) error {
	if err := setRow(f, sheetIssues, 1, []interface{}{"Poziom", "Działka", "Komunikat"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetIssues, "A1", "C1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	row := 2
	for _, issue := range report.ValidationIssues {
		if err := setRow(f, sheetIssues, row, []interface{}{issue.Type, issue.FieldName, issue.Message}); err != nil {
			return err
		}
		row++
	}
	for _, conflict := range report.Conflicts {
		msg := fmt.Sprintf("Konflikt praktyk %s na działce %s (część %s)",
			strings.Join(conflict.Schemes, " i "), conflict.FieldName, conflict.PartDesignation)
		if err := setRow(f, sheetIssues, row, []interface{}{model.IssueError, conflict.FieldName, msg}); err != nil {
			return err
		}
		row++
	}

	return f.SetColWidth(sheetIssues, "C", "C", 80)
}

func (e *Exporter) fillParcels(f *excelize.File, headerStyle int, farm *model.FarmData, year int) error {
	if err := setRow(f, sheetParcels, 1, []interface{}{
		"Działka", "Nr ewidencyjny", "Gmina", "Powierzchnia [ha]",
		"Pow. kwalifikowana [ha]", "Uprawa", "Ekoschematy",
	}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetParcels, "A1", "G1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	row := 2
	for _, field := range farm.Fields {
		crop := field.Crop
		var codes []string
		if entry := field.HistoryForYear(year); entry != nil {
			crop = entry.DeclaredCrop()
			for _, part := range entry.Parts(field.Area) {
				codes = append(codes, part.EcoSchemes...)
			}
		}
		if err := setRow(f, sheetParcels, row, []interface{}{
			field.Name, field.RegistrationNumber, field.Commune,
			field.Area, field.EligibleArea, crop, strings.Join(codes, ", "),
		}); err != nil {
			return err
		}
		row++
	}

	return f.SetColWidth(sheetParcels, "B", "B", 22)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func entryConditionLabel(met bool) string {
	if met {
		return "SPEŁNIONY"
	}
	return "NIESPEŁNIONY"
}
