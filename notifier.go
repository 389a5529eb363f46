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
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/auditdesk/auditdesk/model"
)

// Notifier is the single-slot toast channel. A new notification replaces the
// live one and restarts the expiry clock. Expiry checks notification
// identity, so a timer left over from a replaced notification can never
// clear a newer one.
type Notifier struct {
	mu      sync.Mutex
	current *model.Notification
	ttl     time.Duration
}

// NewNotifier builds a notifier with the given toast lifetime.
func NewNotifier(ttl time.Duration) *Notifier {
	return &Notifier{ttl: ttl}
}

// Show replaces the current notification and schedules its expiry.
func (n *Notifier) Show(message, kind string) model.Notification {
	toast := model.Notification{
		ID:      uuid.New().String(),
		Message: message,
		Kind:    kind,
	}

	n.mu.Lock()
	n.current = &toast
	n.mu.Unlock()

	time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.current != nil && n.current.ID == toast.ID {
			n.current = nil
		}
	})

	return toast
}

// Success shows a success toast.
func (n *Notifier) Success(message string) model.Notification {
	return n.Show(message, model.NotificationSuccess)
}

// Alert shows an alert toast.
func (n *Notifier) Alert(message string) model.Notification {
	return n.Show(message, model.NotificationAlert)
}

// Current returns the live notification, or nil when none is showing.
func (n *Notifier) Current() *model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	copied := *n.current
	return &copied
}
