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
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/auditdesk/auditdesk/cache"
	"github.com/auditdesk/auditdesk/gateway"
	"github.com/auditdesk/auditdesk/model"
)

const (
	snapshotCacheKey = "auditdesk:snapshot"
	snapshotCacheTTL = 24 * time.Hour
)

// Repository holds the last fetched snapshot of all invoice records. A
// refresh replaces the snapshot wholesale; nothing mutates it in place.
// Refreshes are generation-tagged so that a slow fetch finishing after a
// newer one cannot overwrite fresher data with stale data.
type Repository struct {
	mu       sync.RWMutex
	started  uint64
	applied  uint64
	invoices []model.Invoice

	gateway *gateway.Client
	cache   cache.Cache
}

// NewRepository builds a repository over the given pipeline client. The cache
// may be nil, in which case warm start is skipped.
func NewRepository(gw *gateway.Client, ca cache.Cache) *Repository {
	return &Repository{gateway: gw, cache: ca}
}

// WarmStart seeds the snapshot from the cache so the dashboard renders
// something before the first live refresh lands. Cache errors are logged and
// swallowed; a cold start is not a failure.
func (r *Repository) WarmStart(ctx context.Context) {
	if r.cache == nil {
		return
	}
	var cached []model.Invoice
	if err := r.cache.Get(ctx, snapshotCacheKey, &cached); err != nil {
		logrus.WithError(err).Warn("snapshot warm start failed")
		return
	}
	if len(cached) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applied == 0 {
		r.invoices = cached
	}
}

// Refresh re-fetches the full invoice list and replaces the snapshot. When a
// newer refresh finished while this one was in flight, the stale response is
// discarded and the call still reports success.
func (r *Repository) Refresh(ctx context.Context) error {
	r.mu.Lock()
	r.started++
	generation := r.started
	r.mu.Unlock()

	invoices, err := r.gateway.ListReports(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if generation < r.applied {
		r.mu.Unlock()
		logrus.WithField("generation", generation).Debug("discarding stale snapshot refresh")
		return nil
	}
	r.applied = generation
	r.invoices = invoices
	r.mu.Unlock()

	if r.cache != nil {
		if err := r.cache.Set(ctx, snapshotCacheKey, invoices, snapshotCacheTTL); err != nil {
			logrus.WithError(err).Warn("snapshot cache write failed")
		}
	}
	return nil
}

// Snapshot returns a copy of the current invoice list.
func (r *Repository) Snapshot() []model.Invoice {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make([]model.Invoice, len(r.invoices))
	copy(snapshot, r.invoices)
	return snapshot
}

// Find returns the invoice with the given id from the current snapshot.
func (r *Repository) Find(invoiceID string) (model.Invoice, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, inv := range r.invoices {
		if inv.InvoiceID == invoiceID {
			return inv, true
		}
	}
	return model.Invoice{}, false
}
