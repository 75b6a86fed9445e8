package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/snehamhatre1409-sys/Health-Management-System/types"
)

// HistoryHeader is the column layout of the XLSX history export
var HistoryHeader = []string{
	"Date",
	"Weight (kg)",
	"Height (m)",
	"BMI",
	"Status",
	"BMR (kcal)",
	"TDEE (kcal)",
	"Water Target (L)",
	"Protein Target (g)",
}

// GeneratePDFSummary renders the fixed-layout medical summary for the
// most recent record of a user
func GeneratePDFSummary(username string, record types.HealthRecord) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(190, 15, "PROHEALTH MEDICAL SUMMARY", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.Ln(10)
	pdf.CellFormat(190, 10, fmt.Sprintf("User: %s", username), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 10, fmt.Sprintf("Date: %s", record.Date), "", 1, "L", false, 0, "")
	pdf.Line(10, 75, 200, 75)
	pdf.Ln(10)

	pdf.CellFormat(95, 10, fmt.Sprintf("Weight: %.1f kg", record.WeightKg), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 10, fmt.Sprintf("BMI: %.2f (%s)", record.BMI, record.BMIStatus), "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 10, fmt.Sprintf("Basal Metabolic Rate: %.0f kcal/day", record.BMR), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 10, fmt.Sprintf("Daily Energy Expenditure: %.0f kcal/day", record.TDEE), "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 10, fmt.Sprintf("Hydration Target: %.2f L/day", record.WaterTargetL), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 10, fmt.Sprintf("Protein Target: %.0f g/day", record.ProteinTargetG), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf summary: %v", err)
	}
	return buf.Bytes(), nil
}

// GenerateHistoryXLSX renders a user's full record history as a workbook
// with one row per saved record
func GenerateHistoryXLSX(username string, records []types.HealthRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "History"
	f.SetSheetName("Sheet1", sheet)
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   fmt.Sprintf("Health history for %s", username),
		Creator: "Health Management System",
	}); err != nil {
		return nil, fmt.Errorf("failed to set workbook properties: %v", err)
	}

	header := make([]interface{}, len(HistoryHeader))
	for i, name := range HistoryHeader {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %v", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %v", err)
		}
		row := []interface{}{
			record.Date,
			record.WeightKg,
			record.HeightM,
			record.BMI,
			record.BMIStatus,
			record.BMR,
			record.TDEE,
			record.WaterTargetL,
			record.ProteinTargetG,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write record row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render history workbook: %v", err)
	}
	return buf.Bytes(), nil
}
