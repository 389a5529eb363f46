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
	"math"

	"github.com/auditdesk/auditdesk/model"
)

// The pipeline never settled on one status vocabulary: the validator emits
// PASS/FAIL, the ERP connector SUCCESS, and manual decisions land as
// Approved/Rejected next to the validator's REJECTED. These tables encode the
// observed sets verbatim instead of guessing equivalences. A status in
// neither table keeps the invoice out of both queues.
var reviewStatuses = map[string]bool{
	"FAIL":          true,
	"REJECTED":      true,
	"Manual Review": true,
}

var archiveStatuses = map[string]bool{
	"PASS":     true,
	"SUCCESS":  true,
	"Approved": true,
	"Rejected": true,
}

var approvedStatuses = map[string]bool{
	"Approved": true,
	"PASS":     true,
}

// Queues are the derived partitions of the repository snapshot. They are
// views, recomputed on demand, never stored.
type Queues struct {
	Review  []model.Invoice `json:"review"`
	Archive []model.Invoice `json:"archive"`
}

// Metrics are the dashboard aggregates over the full snapshot.
type Metrics struct {
	Total        int `json:"total"`
	ApprovalRate int `json:"approval_rate"`
}

// ClassifyQueues partitions invoices by status membership. Input order is
// preserved within each queue; no invoice ever appears in both.
func ClassifyQueues(invoices []model.Invoice) Queues {
	var q Queues
	for _, inv := range invoices {
		switch {
		case reviewStatuses[inv.Status]:
			q.Review = append(q.Review, inv)
		case archiveStatuses[inv.Status]:
			q.Archive = append(q.Archive, inv)
		}
	}
	return q
}

// ComputeMetrics returns the snapshot totals. The approval rate is the
// rounded percentage of approved invoices over all invoices, and zero for an
// empty snapshot.
func ComputeMetrics(invoices []model.Invoice) Metrics {
	m := Metrics{Total: len(invoices)}
	if m.Total == 0 {
		return m
	}

	approved := 0
	for _, inv := range invoices {
		if approvedStatuses[inv.Status] {
			approved++
		}
	}
	m.ApprovalRate = int(math.Round(float64(approved) / float64(m.Total) * 100))
	return m
}
