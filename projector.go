/*
Copyright 2025 AuditDesk Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package auditdesk

import (
	"github.com/shopspring/decimal"

	"github.com/auditdesk/auditdesk/model"
)

const (
	unknownVendor = "Unknown Vendor"
	noAmount      = "N/A"
	noDate        = "N/A"
)

// ProjectDetail maps a raw invoice record to its fully defaulted display
// form. Missing nested data is never an error: every field resolves to a
// renderable value here, and every view consumes this projection instead of
// reaching into the raw record.
func ProjectDetail(inv model.Invoice) model.InvoiceDetail {
	detail := model.InvoiceDetail{
		InvoiceID:  inv.InvoiceID,
		Status:     inv.Status,
		Summary:    inv.HumanReadableSummary,
		VendorName: unknownVendor,
		Amount:     noAmount,
		LineItems:  []model.LineItem{},
		ReportPath: inv.HTMLReportPath,
	}

	detail.InvoiceDate = model.DateOnly(inv.Timestamp)
	if detail.InvoiceDate == "" {
		detail.InvoiceDate = noDate
	}

	data := inv.Data()
	if data == nil {
		return detail
	}

	if data.VendorName != "" {
		detail.VendorName = data.VendorName
	}
	if data.TotalAmount != nil {
		amount := decimal.NewFromFloat(*data.TotalAmount).StringFixed(2)
		if data.Currency != "" {
			detail.Amount = amount + " " + data.Currency
		} else {
			detail.Amount = amount
		}
	}
	detail.Currency = data.Currency
	if data.InvoiceDate != "" {
		detail.InvoiceDate = data.InvoiceDate
	}
	detail.Confidence = data.TranslationConfidence
	if data.LineItems != nil {
		detail.LineItems = data.LineItems
	}

	return detail
}

// ProjectList projects a whole queue for the list view.
func ProjectList(invoices []model.Invoice) []model.InvoiceDetail {
	details := make([]model.InvoiceDetail, 0, len(invoices))
	for _, inv := range invoices {
		details = append(details, ProjectDetail(inv))
	}
	return details
}
