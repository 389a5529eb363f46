package auditdesk

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/auditdesk/auditdesk/config"
	"github.com/auditdesk/auditdesk/gateway"
)

const repoTestBase = "http://pipeline.local/api"

func newTestRepository() *Repository {
	config.MockConfig(&config.Configuration{
		Pipeline: config.PipelineConfig{URL: repoTestBase},
	})
	cnf, _ := config.Fetch()
	return NewRepository(gateway.NewClient(cnf), nil)
}

func TestRefreshReplacesSnapshotWholesale(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", repoTestBase+"/reports",
		httpmock.NewStringResponder(200, `[{"invoice_id":"INV-1","status":"PASS"},{"invoice_id":"INV-2","status":"FAIL"}]`))

	r := newTestRepository()
	assert.NoError(t, r.Refresh(context.Background()))
	assert.Len(t, r.Snapshot(), 2)

	httpmock.Reset()
	httpmock.RegisterResponder("GET", repoTestBase+"/reports",
		httpmock.NewStringResponder(200, `[{"invoice_id":"INV-3","status":"Approved"}]`))

	assert.NoError(t, r.Refresh(context.Background()))
	snapshot := r.Snapshot()
	assert.Len(t, snapshot, 1)
	assert.Equal(t, "INV-3", snapshot[0].InvoiceID)
}

func TestRefreshFailureKeepsOldSnapshot(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", repoTestBase+"/reports",
		httpmock.NewStringResponder(200, `[{"invoice_id":"INV-1","status":"PASS"}]`))

	r := newTestRepository()
	assert.NoError(t, r.Refresh(context.Background()))

	httpmock.Reset()
	httpmock.RegisterResponder("GET", repoTestBase+"/reports",
		httpmock.NewStringResponder(500, `{"detail":"boom"}`))

	assert.Error(t, r.Refresh(context.Background()))
	assert.Len(t, r.Snapshot(), 1)
}

func TestStaleRefreshIsDiscarded(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	// First request stalls until the second has completed, then answers
	// with stale data. The stale response must not overwrite the newer one.
	firstBlocked := make(chan struct{})
	var once sync.Once
	httpmock.RegisterResponder("GET", repoTestBase+"/reports",
		func(req *http.Request) (*http.Response, error) {
			stale := false
			once.Do(func() {
				stale = true
			})
			if stale {
				<-firstBlocked
				return httpmock.NewStringResponse(200, `[{"invoice_id":"STALE","status":"PASS"}]`), nil
			}
			return httpmock.NewStringResponse(200, `[{"invoice_id":"FRESH","status":"PASS"}]`), nil
		})

	r := newTestRepository()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, r.Refresh(context.Background()))
	}()

	// Wait until the first refresh has started its fetch, then run a newer
	// refresh to completion before releasing the first.
	assert.Eventually(t, func() bool {
		return httpmock.GetTotalCallCount() >= 1
	}, time.Second, 5*time.Millisecond)

	assert.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, "FRESH", r.Snapshot()[0].InvoiceID)

	close(firstBlocked)
	wg.Wait()

	// Last-response-wins would show STALE here; generation tagging keeps FRESH.
	assert.Equal(t, "FRESH", r.Snapshot()[0].InvoiceID)
}

func TestSnapshotReturnsCopy(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", repoTestBase+"/reports",
		httpmock.NewStringResponder(200, `[{"invoice_id":"INV-1","status":"PASS"}]`))

	r := newTestRepository()
	assert.NoError(t, r.Refresh(context.Background()))

	snapshot := r.Snapshot()
	snapshot[0].Status = "FAIL"

	fresh := r.Snapshot()
	assert.Equal(t, "PASS", fresh[0].Status)
}

func TestFind(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", repoTestBase+"/reports",
		httpmock.NewStringResponder(200, `[{"invoice_id":"INV-1","status":"PASS"}]`))

	r := newTestRepository()
	assert.NoError(t, r.Refresh(context.Background()))

	inv, ok := r.Find("INV-1")
	assert.True(t, ok)
	assert.Equal(t, "PASS", inv.Status)

	_, ok = r.Find("INV-404")
	assert.False(t, ok)
}
