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
package model

import "strings"

// LineItem is a single extracted line of an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	Total       float64 `json:"total"`
}

// InvoiceData is the extracted-data payload the pipeline attaches to an
// invoice after OCR and translation. Every field is optional on the wire.
type InvoiceData struct {
	VendorName            string     `json:"vendor_name,omitempty"`
	TotalAmount           *float64   `json:"total_amount,omitempty"`
	Currency              string     `json:"currency,omitempty"`
	InvoiceDate           string     `json:"invoice_date,omitempty"`
	TranslationConfidence float64    `json:"translation_confidence,omitempty"`
	LineItems             []LineItem `json:"line_items,omitempty"`
}

// AuditTrail wraps the extracted data. The pipeline omits it entirely for
// invoices that never reached the extraction stage.
type AuditTrail struct {
	InvoiceData *InvoiceData `json:"invoice_data,omitempty"`
}

// Invoice is one processed record as served by the pipeline's /reports
// endpoint. The repository holds these read-only; all display defaults are
// applied by the detail projector, never here.
type Invoice struct {
	InvoiceID            string      `json:"invoice_id"`
	Status               string      `json:"status"`
	HumanReadableSummary string      `json:"human_readable_summary,omitempty"`
	Timestamp            string      `json:"timestamp,omitempty"`
	AuditTrail           *AuditTrail `json:"audit_trail,omitempty"`
	HTMLReportPath       string      `json:"html_report_path,omitempty"`
}

// Data returns the nested invoice data or nil. Callers must treat nil as
// "not extracted", not as an error.
func (i *Invoice) Data() *InvoiceData {
	if i.AuditTrail == nil {
		return nil
	}
	return i.AuditTrail.InvoiceData
}

// DateOnly returns the date portion of an ISO-8601 timestamp.
func DateOnly(timestamp string) string {
	if idx := strings.IndexByte(timestamp, 'T'); idx > 0 {
		return timestamp[:idx]
	}
	return timestamp
}

// InvoiceDetail is the fully defaulted display projection of an Invoice.
// Both the list view and the detail view consume this struct so the same
// record renders identically everywhere.
type InvoiceDetail struct {
	InvoiceID   string     `json:"invoice_id"`
	Status      string     `json:"status"`
	Summary     string     `json:"summary"`
	VendorName  string     `json:"vendor_name"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	InvoiceDate string     `json:"invoice_date"`
	Confidence  float64    `json:"confidence"`
	LineItems   []LineItem `json:"line_items"`
	ReportPath  string     `json:"report_path,omitempty"`
}
