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
	"strings"

	"github.com/auditdesk/auditdesk/model"
)

// FilterQueue narrows a queue to the invoices whose id or summary contains
// the case-folded term. An empty term returns the input unchanged. The input
// slice is never mutated and its order is preserved, so filtering is
// idempotent for a fixed term.
func FilterQueue(invoices []model.Invoice, term string) []model.Invoice {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return invoices
	}

	filtered := make([]model.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if strings.Contains(strings.ToLower(inv.InvoiceID), term) ||
			strings.Contains(strings.ToLower(inv.HumanReadableSummary), term) {
			filtered = append(filtered, inv)
		}
	}
	return filtered
}
