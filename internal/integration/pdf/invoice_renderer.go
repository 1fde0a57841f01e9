// Package pdf renders invoices as PDF documents.
package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
)

const dateLayout = "02 Jan 2006"

// Issuer is printed in the invoice header.
type Issuer struct {
	Name  string
	Email string
}

type invoiceRenderer struct {
	issuer Issuer
}

// NewInvoiceRenderer creates a maroto backed adapter.InvoiceRenderer.
func NewInvoiceRenderer(issuer Issuer) adapter.InvoiceRenderer {
	return &invoiceRenderer{issuer: issuer}
}

func money(d decimal.Decimal) string {
	return "INR " + d.StringFixed(2)
}

func (r *invoiceRenderer) RenderPDF(ctx context.Context, inv *entity.Invoice, customer *entity.Customer) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, "Invoice", props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Left}),
		text.NewCol(4, string(inv.Status), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right, Top: 4}),
	)

	m.AddRow(22,
		col.New(6).Add(
			text.New("Invoice number: "+inv.ID.String(), props.Text{Size: 9}),
			text.New("Billing period: "+inv.Period(), props.Text{Size: 9, Top: 5}),
			text.New("Date of issue: "+inv.CreatedAt.Format(dateLayout), props.Text{Size: 9, Top: 10}),
			text.New("Date due: "+inv.DueDate.Format(dateLayout), props.Text{Size: 9, Top: 15}),
		),
		col.New(6).Add(
			text.New(r.issuer.Name, props.Text{Style: fontstyle.Bold, Align: align.Right}),
			text.New(r.issuer.Email, props.Text{Size: 9, Top: 5, Align: align.Right}),
		),
	)

	billTo := col.New(12).Add(
		text.New("Bill to", props.Text{Style: fontstyle.Bold}),
		text.New(customer.Name, props.Text{Top: 5}),
		text.New(customer.Email, props.Text{Size: 9, Top: 10}),
	)
	if customer.Company != "" {
		billTo.Add(text.New(customer.Company, props.Text{Size: 9, Top: 15}))
	}
	m.AddRow(24, billTo)

	m.AddRow(8,
		text.NewCol(4, "Service", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Quantity", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))

	for _, item := range inv.Items {
		m.AddRow(7,
			text.NewCol(4, fmt.Sprintf("%s (%s)", item.Service, item.Code), props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Unit, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Rate.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Amount.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(2, line.NewCol(12))

	totals := []struct {
		label string
		value decimal.Decimal
		bold  bool
	}{
		{label: "Subtotal", value: inv.Subtotal},
		{label: fmt.Sprintf("Tax (%s%%)", inv.TaxRate.Mul(decimal.NewFromInt(100)).String()), value: inv.TaxAmount},
		{label: "Total", value: inv.Total, bold: true},
		{label: "Paid", value: inv.PaidAmount},
		{label: "Amount due", value: inv.Outstanding(), bold: true},
	}
	for _, t := range totals {
		style := fontstyle.Normal
		if t.bold {
			style = fontstyle.Bold
		}
		m.AddRow(7,
			col.New(7),
			text.NewCol(2, t.label, props.Text{Size: 9, Style: style}),
			text.NewCol(3, money(t.value), props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}

	if inv.PaymentLinkURL != "" && inv.IsOpen() {
		m.AddRow(12,
			text.NewCol(12, "Pay online: "+inv.PaymentLinkURL, props.Text{Size: 9, Top: 4}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}
