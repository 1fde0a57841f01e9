// Package templates provides email template rendering functionality.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer creates a new template renderer.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// Render renders both HTML and text versions of a template.
func (r *Renderer) Render(templateName string, data interface{}) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		// No text part is acceptable.
		return htmlBuf.String(), "", nil
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// Has reports whether an HTML template with the name exists.
func (r *Renderer) Has(templateName string) bool {
	return r.htmlTemplates.Lookup(templateName+".html") != nil
}

// NoticeData is the data every customer email template receives.
type NoticeData struct {
	CompanyName    string
	CustomerName   string
	Period         string
	AmountDue      string
	DueDate        string
	DaysOverdue    int
	PaymentLinkURL string
	Reason         string
	Balance        string
	MinimumBalance string
}

// Map flattens the data for storage on a queued job.
func (d NoticeData) Map() map[string]interface{} {
	return map[string]interface{}{
		"company_name":     d.CompanyName,
		"customer_name":    d.CustomerName,
		"period":           d.Period,
		"amount_due":       d.AmountDue,
		"due_date":         d.DueDate,
		"days_overdue":     d.DaysOverdue,
		"payment_link_url": d.PaymentLinkURL,
		"reason":           d.Reason,
		"balance":          d.Balance,
		"minimum_balance":  d.MinimumBalance,
	}
}

// NoticeDataFromMap rebuilds the data stored by Map. Numbers may come back as
// float64 or string after a JSON round trip.
func NoticeDataFromMap(data map[string]interface{}) NoticeData {
	return NoticeData{
		CompanyName:    getString(data, "company_name"),
		CustomerName:   getString(data, "customer_name"),
		Period:         getString(data, "period"),
		AmountDue:      getString(data, "amount_due"),
		DueDate:        getString(data, "due_date"),
		DaysOverdue:    getInt(data, "days_overdue"),
		PaymentLinkURL: getString(data, "payment_link_url"),
		Reason:         getString(data, "reason"),
		Balance:        getString(data, "balance"),
		MinimumBalance: getString(data, "minimum_balance"),
	}
}

func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getInt(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}
