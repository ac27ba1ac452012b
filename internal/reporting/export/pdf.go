package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/smallbiznis/estatehub/internal/reporting/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	titleText  = props.Text{Size: 18, Style: fontstyle.Bold}
	headerText = props.Text{Size: 9, Style: fontstyle.Bold}
	cellText   = props.Text{Size: 9}
	amountText = props.Text{Size: 9, Align: align.Right}
)

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

// FeePaymentStatusPDF renders the per-unit paid/unpaid list of one fee, the
// sheet a manager prints to chase arrears.
func (g *Generator) FeePaymentStatusPDF(report domain.PaymentStatusReport) ([]byte, error) {
	m := newDocument()

	m.AddRow(16, text.NewCol(12, "Payment status: "+report.FeeName, titleText))
	m.AddRow(20,
		col.New(6).Add(
			text.New(fmt.Sprintf("Amount: %s (%s)", formatAmount(report.Amount), report.Frequency), props.Text{Size: 10}),
			text.New("Generated: "+formatTime(report.GeneratedAt), props.Text{Size: 10, Top: 5}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Units: %d", report.TotalUnits), props.Text{Size: 10, Align: align.Right}),
			text.New(fmt.Sprintf("Paid: %d  Unpaid: %d", report.PaidCount, report.UnpaidCount), props.Text{Size: 10, Align: align.Right, Top: 5}),
		),
	)

	m.AddRow(8,
		text.NewCol(3, "Unit", headerText),
		text.NewCol(3, "Block", headerText),
		text.NewCol(2, "Status", headerText),
		text.NewCol(2, "Paid", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Paid at", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, unit := range report.Units {
		paidAt := ""
		if unit.PaidAt != nil {
			paidAt = unit.PaidAt.UTC().Format("2006-01-02")
		}
		m.AddRow(7,
			text.NewCol(3, unit.UnitNumber, cellText),
			text.NewCol(3, unit.Block, cellText),
			text.NewCol(2, string(unit.Status), cellText),
			text.NewCol(2, formatAmount(unit.AmountPaid), amountText),
			text.NewCol(2, paidAt, amountText),
		)
	}

	return generate(m)
}

// EstateSummaryPDF renders the totals and per-fee table of an estate summary.
// Warnings are listed at the end.
func (g *Generator) EstateSummaryPDF(summary domain.EstateSummary) ([]byte, error) {
	m := newDocument()

	m.AddRow(16, text.NewCol(12, summary.EstateName, titleText))
	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Billing period: %s  Units: %d  Generated: %s",
		summary.FeeFrequency, summary.TotalUnits, formatTime(summary.GeneratedAt)), props.Text{Size: 10}))

	totals := [][2]string{
		{"Total expected", formatAmount(summary.TotalExpected)},
		{"Total collected", formatAmount(summary.TotalCollected)},
		{"Inactive fee collections", formatAmount(summary.InactiveCollected)},
		{"Outstanding", formatAmount(summary.Outstanding)},
	}
	for _, total := range totals {
		m.AddRow(7,
			col.New(6),
			text.NewCol(3, total[0], cellText),
			text.NewCol(3, total[1], amountText),
		)
	}

	m.AddRow(12,
		text.NewCol(4, "Fee", props.Text{Size: 9, Style: fontstyle.Bold, Top: 5}),
		text.NewCol(2, "Amount", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 5}),
		text.NewCol(2, "Expected", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 5}),
		text.NewCol(2, "Collected", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 5}),
		text.NewCol(2, "Paid units", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 5}),
	)
	for _, fee := range summary.Fees {
		name := fee.Name
		if !fee.IsActive {
			name += " (inactive)"
		}
		m.AddRow(7,
			text.NewCol(4, name, cellText),
			text.NewCol(2, formatAmount(fee.Amount), amountText),
			text.NewCol(2, formatAmount(fee.Expected), amountText),
			text.NewCol(2, formatAmount(fee.Collected), amountText),
			text.NewCol(2, fmt.Sprintf("%d", fee.PaidCount), amountText),
		)
	}

	if len(summary.Warnings) > 0 {
		m.AddRow(12, text.NewCol(12, "Warnings", props.Text{Size: 11, Style: fontstyle.Bold, Top: 5}))
		for _, warning := range summary.Warnings {
			m.AddRow(7, text.NewCol(12, warning.Code+": "+warning.Message, cellText))
		}
	}

	return generate(m)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// formatAmount groups thousands; amounts stay in minor units.
func formatAmount(value int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", value)
}
