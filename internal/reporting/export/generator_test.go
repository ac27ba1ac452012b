package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	paymentdomain "github.com/smallbiznis/estatehub/internal/payment/domain"
	"github.com/smallbiznis/estatehub/internal/reporting/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSummary(id snowflake.ID, name string) domain.EstateSummary {
	return domain.EstateSummary{
		EstateID:       id,
		EstateName:     name,
		FeeFrequency:   estatedomain.FrequencyMonthly,
		TotalUnits:     3,
		TotalExpected:  3000,
		TotalCollected: 2000,
		Outstanding:    1000,
		Fees: []domain.FeeSummary{
			{FeeID: 10, Name: "service charge", Amount: 1000, Frequency: estatedomain.FrequencyMonthly, IsActive: true, Expected: 3000, Collected: 2000, PaidCount: 2},
		},
		Warnings:    []domain.Warning{},
		GeneratedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return file
}

func TestEstateSummaryWorkbook(t *testing.T) {
	data, err := NewGenerator().EstateSummary(sampleSummary(1, "Green Valley"))
	require.NoError(t, err)

	file := open(t, data)
	assert.Equal(t, []string{summarySheet}, file.GetSheetList())

	name, err := file.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Green Valley", name)

	outstanding, err := file.GetCellValue(summarySheet, "B6")
	require.NoError(t, err)
	assert.Equal(t, "1000", outstanding)

	fee, err := file.GetCellValue(summarySheet, "A10")
	require.NoError(t, err)
	assert.Equal(t, "service charge", fee)
}

func TestWarningsGetTheirOwnSheet(t *testing.T) {
	summary := sampleSummary(1, "Green Valley")
	summary.Warnings = []domain.Warning{{Code: domain.WarningCollectedExceedsExpected, EstateID: 1, Message: "over"}}

	data, err := NewGenerator().EstateSummary(summary)
	require.NoError(t, err)

	file := open(t, data)
	assert.Contains(t, file.GetSheetList(), warningSheet)
	code, err := file.GetCellValue(warningSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, domain.WarningCollectedExceedsExpected, code)
}

func TestOverallSummaryWorkbook(t *testing.T) {
	overall := domain.OverallSummary{
		Estates: []domain.EstateSummary{
			sampleSummary(1, "Green Valley"),
			sampleSummary(2, "Green Valley"),
			sampleSummary(3, "Block [A]: north"),
		},
		TotalExpected:  9000,
		TotalCollected: 6000,
		Outstanding:    3000,
	}

	data, err := NewGenerator().OverallSummary(overall)
	require.NoError(t, err)

	file := open(t, data)
	sheets := file.GetSheetList()
	assert.Equal(t, []string{summarySheet, "Green Valley", "Green Valley-2", "Block -A-- north"}, sheets)

	total, err := file.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "9000", total)

	estate, err := file.GetCellValue(summarySheet, "A8")
	require.NoError(t, err)
	assert.Equal(t, "Green Valley", estate)
}

func TestSheetNameIsUniqueAndBounded(t *testing.T) {
	long := strings.Repeat("x", 40)
	used := map[string]struct{}{}

	first := sheetName(long, "1", used)
	used[first] = struct{}{}
	second := sheetName(long, "2", used)

	assert.Len(t, first, maxSheetName)
	assert.Len(t, second, maxSheetName)
	assert.True(t, strings.HasSuffix(second, "-2"))
	assert.Equal(t, "42", sheetName("  ", "42", used))
}

func TestFeePaymentStatusPDF(t *testing.T) {
	paidAt := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	report := domain.PaymentStatusReport{
		FeeID:       10,
		FeeName:     "service charge",
		EstateID:    1,
		Amount:      150000,
		Frequency:   estatedomain.FrequencyMonthly,
		TotalUnits:  2,
		PaidCount:   1,
		UnpaidCount: 1,
		Units: []domain.UnitPaymentStatus{
			{UnitID: 1, UnitNumber: "A-1", Status: paymentdomain.StatusPaid, AmountPaid: 150000, PaidAt: &paidAt},
			{UnitID: 2, UnitNumber: "A-2", Status: paymentdomain.StatusUnpaid},
		},
		GeneratedAt: paidAt,
	}

	data, err := NewGenerator().FeePaymentStatusPDF(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestEstateSummaryPDF(t *testing.T) {
	summary := sampleSummary(1, "Green Valley")
	summary.Warnings = []domain.Warning{{Code: domain.WarningCollectedExceedsExpected, EstateID: 1, Message: "collected exceeds expected"}}

	data, err := NewGenerator().EstateSummaryPDF(summary)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,500,000", formatAmount(1500000))
	assert.Equal(t, "0", formatAmount(0))
}
