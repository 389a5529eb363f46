package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"

	"github.com/auditdesk/auditdesk/config"
	"github.com/auditdesk/auditdesk/model"
)

func newTestCache(t *testing.T) Cache {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := newRedisCache(mr.Addr(), false)
	assert.NoError(t, err)
	return c
}

func TestSetGetDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	snapshot := []model.Invoice{
		{InvoiceID: "INV-1", Status: "Manual Review"},
		{InvoiceID: "INV-2", Status: "PASS"},
	}

	err := c.Set(ctx, "auditdesk:snapshot", snapshot, time.Minute)
	assert.NoError(t, err)

	var got []model.Invoice
	err = c.Get(ctx, "auditdesk:snapshot", &got)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "INV-1", got[0].InvoiceID)

	err = c.Delete(ctx, "auditdesk:snapshot")
	assert.NoError(t, err)
}

func TestGetMissIsNotAnError(t *testing.T) {
	c := newTestCache(t)

	var got []model.Invoice
	err := c.Get(context.Background(), "auditdesk:absent", &got)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewCacheDisabledWithoutRedis(t *testing.T) {
	config.MockConfig(&config.Configuration{
		Pipeline: config.PipelineConfig{URL: "http://localhost:8000/api"},
	})

	c, err := NewCache()
	assert.NoError(t, err)
	assert.Nil(t, c)
}
