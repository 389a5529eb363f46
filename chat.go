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
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/auditdesk/auditdesk/gateway"
	"github.com/auditdesk/auditdesk/model"
)

const (
	// ChatStateIdle accepts the next question.
	ChatStateIdle = "idle"
	// ChatStateAwaiting means a request is in flight; sends are rejected
	// until the matching assistant turn lands.
	ChatStateAwaiting = "awaiting-response"

	chatGreeting = "Hello! I have access to all processed invoice data. Ask me anything."

	// Appended instead of an answer whenever the round trip fails, so a
	// completed user turn always has a matching assistant turn.
	chatFailureReply = "Error connecting to the audit assistant. Is the pipeline running?"
)

var (
	// ErrEmptyQuestion rejects blank input before any state changes.
	ErrEmptyQuestion = errors.New("question must not be empty")
	// ErrSessionBusy rejects a send while a request is in flight.
	ErrSessionBusy = errors.New("a chat request is already in flight")
)

// ChatSession owns the ordered conversation log and serializes requests to
// the assistant: at most one is in flight, so the log alternates strictly
// between user and assistant turns after the seeded greeting.
type ChatSession struct {
	mu       sync.Mutex
	state    string
	messages []model.ChatMessage

	gateway *gateway.Client
}

// NewChatSession starts a session seeded with the fixed greeting.
func NewChatSession(gw *gateway.Client) *ChatSession {
	return &ChatSession{
		state: ChatStateIdle,
		messages: []model.ChatMessage{
			{Role: model.RoleAssistant, Content: chatGreeting},
		},
		gateway: gw,
	}
}

// State reports the current session state.
func (s *ChatSession) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a copy of the conversation log.
func (s *ChatSession) Messages() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := make([]model.ChatMessage, len(s.messages))
	copy(log, s.messages)
	return log
}

// serializeHistory renders the log as "<Role>: <content>" lines with
// capitalized role labels, the form the pipeline expects as context.
func serializeHistory(messages []model.ChatMessage) []string {
	history := make([]string, 0, len(messages))
	for _, m := range messages {
		label := "User"
		if m.Role == model.RoleAssistant {
			label = "Assistant"
		}
		history = append(history, fmt.Sprintf("%s: %s", label, m.Content))
	}
	return history
}

// Send runs one conversation turn. It appends the user message, asks the
// assistant with the history as it stood before this turn, gates the answer,
// and appends the assistant message. On transport or server failure the
// fixed failure reply is appended instead, so the log never ends on a
// dangling user turn. The returned string is the displayed assistant text.
func (s *ChatSession) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyQuestion
	}

	s.mu.Lock()
	if s.state != ChatStateIdle {
		s.mu.Unlock()
		return "", ErrSessionBusy
	}
	s.state = ChatStateAwaiting
	// History before this turn, then the user message goes on the log.
	history := serializeHistory(s.messages)
	s.messages = append(s.messages, model.ChatMessage{Role: model.RoleUser, Content: text})
	s.mu.Unlock()

	response, err := s.gateway.Chat(ctx, text, history)

	reply := chatFailureReply
	if err == nil {
		reply = Gate(response)
	}

	s.mu.Lock()
	s.messages = append(s.messages, model.ChatMessage{Role: model.RoleAssistant, Content: reply})
	s.state = ChatStateIdle
	s.mu.Unlock()

	return reply, nil
}
