package auditdesk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/auditdesk/auditdesk/model"
)

func TestNotifierShowAndExpire(t *testing.T) {
	n := NewNotifier(50 * time.Millisecond)

	n.Success("Invoice INV-1 Approved")
	current := n.Current()
	assert.NotNil(t, current)
	assert.Equal(t, "Invoice INV-1 Approved", current.Message)
	assert.Equal(t, model.NotificationSuccess, current.Kind)

	assert.Eventually(t, func() bool {
		return n.Current() == nil
	}, time.Second, 10*time.Millisecond)
}

func TestNotifierLastWriterWins(t *testing.T) {
	n := NewNotifier(time.Minute)

	n.Alert("first")
	n.Success("second")

	current := n.Current()
	assert.NotNil(t, current)
	assert.Equal(t, "second", current.Message)
}

func TestNotifierStaleTimerDoesNotClearNewer(t *testing.T) {
	n := NewNotifier(50 * time.Millisecond)

	n.Alert("first")
	time.Sleep(30 * time.Millisecond)
	n.Alert("second")

	// The first toast's timer fires around t=50ms; the second must survive it.
	time.Sleep(30 * time.Millisecond)
	current := n.Current()
	assert.NotNil(t, current)
	assert.Equal(t, "second", current.Message)

	// And the second still expires on its own clock.
	assert.Eventually(t, func() bool {
		return n.Current() == nil
	}, time.Second, 10*time.Millisecond)
}

func TestNotifierCurrentReturnsCopy(t *testing.T) {
	n := NewNotifier(time.Minute)
	n.Success("original")

	current := n.Current()
	current.Message = "mutated"

	assert.Equal(t, "original", n.Current().Message)
}
