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
	"time"

	"github.com/auditdesk/auditdesk/cache"
	"github.com/auditdesk/auditdesk/config"
	"github.com/auditdesk/auditdesk/gateway"
	"github.com/auditdesk/auditdesk/model"
)

// AuditDesk is the workflow core of the invoice auditing dashboard. It wires
// the pipeline client, the invoice repository, the chat session and the
// notifier; everything user-facing (the gin surface, the CLI) drives this
// struct and carries no decision logic of its own.
type AuditDesk struct {
	gateway    *gateway.Client
	repository *Repository
	chat       *ChatSession
	notifier   *Notifier
}

// NewAuditDesk initializes the workflow core from configuration.
func NewAuditDesk(cfg *config.Configuration) (*AuditDesk, error) {
	ca, err := cache.NewCache()
	if err != nil {
		return nil, err
	}

	gw := gateway.NewClient(cfg)
	return &AuditDesk{
		gateway:    gw,
		repository: NewRepository(gw, ca),
		chat:       NewChatSession(gw),
		notifier:   NewNotifier(time.Duration(cfg.Notification.ToastTTLMs) * time.Millisecond),
	}, nil
}

func (d *AuditDesk) Gateway() *gateway.Client { return d.gateway }

func (d *AuditDesk) Repository() *Repository { return d.repository }

func (d *AuditDesk) Chat() *ChatSession { return d.chat }

func (d *AuditDesk) Notifier() *Notifier { return d.notifier }

// DashboardView is the derived state the dashboard renders: both queues,
// optionally narrowed by a search term, plus the snapshot aggregates.
type DashboardView struct {
	Review  []model.InvoiceDetail `json:"review"`
	Archive []model.InvoiceDetail `json:"archive"`
	Metrics Metrics               `json:"metrics"`
}

// Dashboard recomputes the queue partitions and metrics from the current
// snapshot. Nothing here is cached: every call reflects the snapshot as of
// now, which is what makes tab switches and refreshes consistent.
func (d *AuditDesk) Dashboard(searchTerm string) DashboardView {
	snapshot := d.repository.Snapshot()
	queues := ClassifyQueues(snapshot)
	return DashboardView{
		Review:  ProjectList(FilterQueue(queues.Review, searchTerm)),
		Archive: ProjectList(FilterQueue(queues.Archive, searchTerm)),
		Metrics: ComputeMetrics(snapshot),
	}
}

// InvoiceDetail projects one invoice from the current snapshot.
func (d *AuditDesk) InvoiceDetail(invoiceID string) (model.InvoiceDetail, bool) {
	inv, ok := d.repository.Find(invoiceID)
	if !ok {
		return model.InvoiceDetail{}, false
	}
	return ProjectDetail(inv), true
}
