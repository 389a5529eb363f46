package auditdesk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/auditdesk/auditdesk/model"
)

func TestProjectDetailDefaultsWithoutAuditTrail(t *testing.T) {
	detail := ProjectDetail(model.Invoice{
		InvoiceID: "INV-1",
		Status:    "Manual Review",
	})

	assert.Equal(t, "INV-1", detail.InvoiceID)
	assert.Equal(t, "Unknown Vendor", detail.VendorName)
	assert.Equal(t, "N/A", detail.Amount)
	assert.Equal(t, "N/A", detail.InvoiceDate)
	assert.Equal(t, 0.0, detail.Confidence)
	assert.NotNil(t, detail.LineItems)
	assert.Empty(t, detail.LineItems)
}

func TestProjectDetailTimestampDateFallback(t *testing.T) {
	detail := ProjectDetail(model.Invoice{
		InvoiceID: "INV-2",
		Timestamp: "2025-03-14T09:26:53Z",
	})
	assert.Equal(t, "2025-03-14", detail.InvoiceDate)
}

func TestProjectDetailFullData(t *testing.T) {
	amount := 1240.5
	detail := ProjectDetail(model.Invoice{
		InvoiceID:            "INV-3",
		Status:               "PASS",
		HumanReadableSummary: "All checks passed",
		Timestamp:            "2025-03-14T09:26:53Z",
		HTMLReportPath:       "INV-3.html",
		AuditTrail: &model.AuditTrail{
			InvoiceData: &model.InvoiceData{
				VendorName:            "Acme GmbH",
				TotalAmount:           &amount,
				Currency:              "EUR",
				InvoiceDate:           "2025-03-01",
				TranslationConfidence: 0.87,
				LineItems: []model.LineItem{
					{Description: "Widgets", Qty: 10, Total: 1240.5},
				},
			},
		},
	})

	assert.Equal(t, "Acme GmbH", detail.VendorName)
	assert.Equal(t, "1240.50 EUR", detail.Amount)
	assert.Equal(t, "2025-03-01", detail.InvoiceDate) // extracted date wins over timestamp
	assert.Equal(t, 0.87, detail.Confidence)
	assert.Len(t, detail.LineItems, 1)
	assert.Equal(t, "INV-3.html", detail.ReportPath)
}

func TestProjectDetailAmountWithoutCurrency(t *testing.T) {
	amount := 99.9
	detail := ProjectDetail(model.Invoice{
		InvoiceID: "INV-4",
		AuditTrail: &model.AuditTrail{
			InvoiceData: &model.InvoiceData{TotalAmount: &amount},
		},
	})
	assert.Equal(t, "99.90", detail.Amount)
}

func TestProjectDetailPartialDataNeverErrors(t *testing.T) {
	// audit_trail present but invoice_data missing
	detail := ProjectDetail(model.Invoice{
		InvoiceID:  "INV-5",
		AuditTrail: &model.AuditTrail{},
	})
	assert.Equal(t, "Unknown Vendor", detail.VendorName)
	assert.Equal(t, "N/A", detail.Amount)
}

func TestProjectListMatchesDetailProjection(t *testing.T) {
	invoices := []model.Invoice{
		{InvoiceID: "INV-1"},
		{InvoiceID: "INV-2", Timestamp: "2025-01-02T00:00:00Z"},
	}
	list := ProjectList(invoices)
	assert.Len(t, list, 2)
	// List and detail views must render the same record identically
	assert.Equal(t, ProjectDetail(invoices[0]), list[0])
	assert.Equal(t, ProjectDetail(invoices[1]), list[1])
}
