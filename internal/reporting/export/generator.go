package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/smallbiznis/estatehub/internal/reporting/domain"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	warningSheet = "Warnings"
	maxSheetName = 31
)

// Generator renders report results as XLSX workbooks.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// EstateSummary writes one summary sheet with a per-fee table, plus a warnings
// sheet when the summary carries any.
func (g *Generator) EstateSummary(summary domain.EstateSummary) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	g.writeEstate(file, summarySheet, summary)
	if err := g.writeWarnings(file, summary.Warnings); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	return write(file)
}

// OverallSummary writes the grand totals and one sheet per estate.
func (g *Generator) OverallSummary(overall domain.OverallSummary) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	set := setter(file, summarySheet)
	set("A1", "Generated at")
	set("B1", formatTime(overall.GeneratedAt))
	set("A2", "Estates")
	set("B2", len(overall.Estates))
	set("A3", "Total expected")
	set("B3", overall.TotalExpected)
	set("A4", "Total collected")
	set("B4", overall.TotalCollected)
	set("A5", "Outstanding")
	set("B5", overall.Outstanding)

	tableRow := 7
	headers := []string{"Estate", "Billing period", "Units", "Expected", "Collected", "Outstanding"}
	writeHeader(file, summarySheet, tableRow, headers)
	for i, estate := range overall.Estates {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), estate.EstateName)
		set(fmt.Sprintf("B%d", row), string(estate.FeeFrequency))
		set(fmt.Sprintf("C%d", row), estate.TotalUnits)
		set(fmt.Sprintf("D%d", row), estate.TotalExpected)
		set(fmt.Sprintf("E%d", row), estate.TotalCollected)
		set(fmt.Sprintf("F%d", row), estate.Outstanding)
	}
	_ = file.SetColWidth(summarySheet, "A", "A", 36)
	_ = file.SetColWidth(summarySheet, "B", "F", 16)

	used := map[string]struct{}{summarySheet: {}, warningSheet: {}}
	for _, estate := range overall.Estates {
		name := sheetName(estate.EstateName, estate.EstateID.String(), used)
		used[name] = struct{}{}
		if _, err := file.NewSheet(name); err != nil {
			return nil, err
		}
		g.writeEstate(file, name, estate)
	}
	if err := g.writeWarnings(file, overall.Warnings); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	return write(file)
}

func (g *Generator) writeEstate(file *excelize.File, sheet string, summary domain.EstateSummary) {
	set := setter(file, sheet)
	set("A1", "Estate")
	set("B1", summary.EstateName)
	set("A2", "Billing period")
	set("B2", string(summary.FeeFrequency))
	set("A3", "Units")
	set("B3", summary.TotalUnits)
	set("A4", "Total expected")
	set("B4", summary.TotalExpected)
	set("A5", "Total collected")
	set("B5", summary.TotalCollected)
	set("A6", "Outstanding")
	set("B6", summary.Outstanding)
	set("A7", "Generated at")
	set("B7", formatTime(summary.GeneratedAt))
	set("A8", "Inactive fee collections")
	set("B8", summary.InactiveCollected)

	tableRow := 9
	headers := []string{"Fee", "Frequency", "Amount", "Active", "Expected", "Collected", "Paid units"}
	writeHeader(file, sheet, tableRow, headers)
	for i, fee := range summary.Fees {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), fee.Name)
		set(fmt.Sprintf("B%d", row), string(fee.Frequency))
		set(fmt.Sprintf("C%d", row), fee.Amount)
		set(fmt.Sprintf("D%d", row), fee.IsActive)
		set(fmt.Sprintf("E%d", row), fee.Expected)
		set(fmt.Sprintf("F%d", row), fee.Collected)
		set(fmt.Sprintf("G%d", row), fee.PaidCount)
	}

	_ = file.SetColWidth(sheet, "A", "A", 32)
	_ = file.SetColWidth(sheet, "B", "G", 14)
}

func (g *Generator) writeWarnings(file *excelize.File, warnings []domain.Warning) error {
	if len(warnings) == 0 {
		return nil
	}
	if _, err := file.NewSheet(warningSheet); err != nil {
		return err
	}

	set := setter(file, warningSheet)
	writeHeader(file, warningSheet, 1, []string{"Code", "Estate", "Fee", "Payment", "Unit", "Message"})
	for i, warning := range warnings {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), warning.Code)
		set(fmt.Sprintf("B%d", row), warning.EstateID.String())
		if warning.FeeID != nil {
			set(fmt.Sprintf("C%d", row), warning.FeeID.String())
		}
		if warning.PaymentID != nil {
			set(fmt.Sprintf("D%d", row), warning.PaymentID.String())
		}
		if warning.UnitID != nil {
			set(fmt.Sprintf("E%d", row), warning.UnitID.String())
		}
		set(fmt.Sprintf("F%d", row), warning.Message)
	}
	_ = file.SetColWidth(warningSheet, "A", "A", 28)
	_ = file.SetColWidth(warningSheet, "B", "E", 22)
	_ = file.SetColWidth(warningSheet, "F", "F", 60)
	return nil
}

func setter(file *excelize.File, sheet string) func(string, any) {
	return func(cell string, value any) {
		_ = file.SetCellValue(sheet, cell, value)
	}
}

func writeHeader(file *excelize.File, sheet string, row int, headers []string) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = file.SetCellValue(sheet, cell, header)
	}
}

func write(file *excelize.File) ([]byte, error) {
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

// sheetName derives a unique, valid worksheet name. Excel caps names at 31
// characters and forbids []:*?/\.
func sheetName(name, fallback string, used map[string]struct{}) string {
	base := sanitizeSheetName(name)
	if base == "" {
		base = sanitizeSheetName(fallback)
	}
	base = truncate(base, maxSheetName)

	candidate := base
	for counter := 2; ; counter++ {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		candidate = truncate(base, maxSheetName-len([]rune(suffix))) + suffix
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	return strings.TrimSpace(replacer.Replace(strings.TrimSpace(value)))
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
