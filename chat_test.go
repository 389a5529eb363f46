package auditdesk

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/auditdesk/auditdesk/config"
	"github.com/auditdesk/auditdesk/gateway"
	"github.com/auditdesk/auditdesk/model"
)

const chatTestBase = "http://pipeline.local/api"

func newTestChatSession() *ChatSession {
	config.MockConfig(&config.Configuration{
		Pipeline: config.PipelineConfig{URL: chatTestBase},
	})
	cnf, _ := config.Fetch()
	return NewChatSession(gateway.NewClient(cnf))
}

func TestChatSessionStartsWithGreeting(t *testing.T) {
	s := newTestChatSession()

	messages := s.Messages()
	assert.Len(t, messages, 1)
	assert.Equal(t, model.RoleAssistant, messages[0].Role)
	assert.Equal(t, chatGreeting, messages[0].Content)
	assert.Equal(t, ChatStateIdle, s.State())
}

func TestChatSendAppendsTwoMessages(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", chatTestBase+"/chat",
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(200, model.ChatResponse{
				Answer: "INV-1 totals 120.50 EUR.",
				IsSafe: true,
				Score:  &model.SafetyScore{Score: 0.92},
			})
		})

	s := newTestChatSession()
	before := len(s.Messages())

	reply, err := s.Send(context.Background(), "total for INV-1?")
	assert.NoError(t, err)
	assert.Contains(t, reply, "92%")

	messages := s.Messages()
	assert.Len(t, messages, before+2)
	assert.Equal(t, model.RoleUser, messages[before].Role)
	assert.Equal(t, "total for INV-1?", messages[before].Content)
	assert.Equal(t, model.RoleAssistant, messages[before+1].Role)
	assert.Equal(t, reply, messages[before+1].Content)
	assert.Equal(t, ChatStateIdle, s.State())
}

func TestChatSendHistoryExcludesCurrentQuestion(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	var captured struct {
		Question string   `json:"question"`
		History  []string `json:"history"`
	}
	httpmock.RegisterResponder("POST", chatTestBase+"/chat",
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&captured); err != nil {
				return nil, err
			}
			return httpmock.NewJsonResponse(200, model.ChatResponse{Answer: "hello", IsSafe: true})
		})

	s := newTestChatSession()
	_, err := s.Send(context.Background(), "hi")
	assert.NoError(t, err)

	// Second turn: history carries greeting + first exchange, not the new question
	_, err = s.Send(context.Background(), "total for INV-1?")
	assert.NoError(t, err)

	assert.Equal(t, "total for INV-1?", captured.Question)
	assert.Len(t, captured.History, 3)
	assert.Equal(t, "Assistant: "+chatGreeting, captured.History[0])
	assert.Equal(t, "User: hi", captured.History[1])
	assert.Contains(t, captured.History[2], "Assistant: hello")
	for _, h := range captured.History {
		assert.NotContains(t, h, "total for INV-1?")
	}
}

func TestChatSendFailureAppendsFixedAssistantTurn(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", chatTestBase+"/chat",
		httpmock.NewStringResponder(500, `{"detail":"Backend Error"}`))

	s := newTestChatSession()
	before := len(s.Messages())

	reply, err := s.Send(context.Background(), "hi")
	assert.NoError(t, err)
	assert.Equal(t, chatFailureReply, reply)

	messages := s.Messages()
	assert.Len(t, messages, before+2)
	assert.Equal(t, model.RoleUser, messages[before].Role)
	assert.Equal(t, model.RoleAssistant, messages[before+1].Role)
	assert.Equal(t, chatFailureReply, messages[before+1].Content)
	assert.Equal(t, ChatStateIdle, s.State())
}

func TestChatSendRejectsEmptyInput(t *testing.T) {
	s := newTestChatSession()

	_, err := s.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Len(t, s.Messages(), 1)
	assert.Equal(t, ChatStateIdle, s.State())
}

func TestChatSendRejectedWhileAwaiting(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	release := make(chan struct{})
	httpmock.RegisterResponder("POST", chatTestBase+"/chat",
		func(req *http.Request) (*http.Response, error) {
			<-release
			return httpmock.NewJsonResponse(200, model.ChatResponse{Answer: "slow", IsSafe: true})
		})

	s := newTestChatSession()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Send(context.Background(), "first")
	}()

	assert.Eventually(t, func() bool {
		return s.State() == ChatStateAwaiting
	}, time.Second, 5*time.Millisecond)

	_, err := s.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrSessionBusy)

	close(release)
	<-done

	// Exactly one exchange made it onto the log
	messages := s.Messages()
	assert.Len(t, messages, 3)
	assert.Equal(t, "first", messages[1].Content)
	assert.Equal(t, ChatStateIdle, s.State())
}
