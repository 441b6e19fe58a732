package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypecode-tech/saafir/pkg/action"
	"github.com/hypecode-tech/saafir/pkg/api"
	"github.com/hypecode-tech/saafir/pkg/config"
	"github.com/hypecode-tech/saafir/pkg/envelope"
	"github.com/hypecode-tech/saafir/pkg/router"
	"github.com/hypecode-tech/saafir/pkg/schema"
)

// fakeResponder captures what the handler sends back through the gateway.
type fakeResponder struct {
	replies []string
	signals []string
}

func (f *fakeResponder) SendReply(session api.SessionContext, content string) error {
	f.replies = append(f.replies, content)
	return nil
}

func (f *fakeResponder) SendSignal(session api.SessionContext, signal string) error {
	f.signals = append(f.signals, signal)
	return nil
}

func TestOnMessageRepliesWithRouterOutput(t *testing.T) {
	rt := newMockedRouter(t, `{"actionName": "ping", "parameters": {}, "response": "pong"}`)
	responder := &fakeResponder{}
	onMessage := NewMessageHandler(rt, responder, config.DefaultSystemConfig())

	onMessage(&api.UnifiedMessage{
		Session: api.SessionContext{ChannelID: "test", Username: "alice"},
		Content: "ping me",
	})

	require.Equal(t, []string{"pong"}, responder.replies)
	assert.Contains(t, responder.signals, "thinking")
}

func TestOnMessageReportsFailure(t *testing.T) {
	rt := newMockedRouter(t, "gibberish, not an envelope")
	responder := &fakeResponder{}
	onMessage := NewMessageHandler(rt, responder, config.DefaultSystemConfig())

	onMessage(&api.UnifiedMessage{
		Session: api.SessionContext{ChannelID: "test"},
		Content: "hello",
	})

	require.Len(t, responder.replies, 1)
	assert.Contains(t, responder.replies[0], "❌")
}

func TestUserFacingErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&envelope.InvalidEnvelopeError{Raw: "x", Reason: "malformed JSON"}, "unreadable"},
		{&router.ActionNotFoundError{Name: "multiply"}, "multiply"},
		{&schema.ValidationError{Fields: []schema.FieldError{{Field: "a", Message: "required field is missing"}}}, "invalid details"},
		{&router.ActionExecutionError{Action: "add", Err: errors.New("boom")}, "boom"},
		{context.DeadlineExceeded, "timed out"},
		{fmt.Errorf("plain failure"), "plain failure"},
	}

	for _, tc := range cases {
		assert.Contains(t, userFacingError(tc.err), tc.want)
	}
}

func newMockedRouter(t *testing.T, mockResponse string) *router.Router {
	t.Helper()

	actions := action.NewRegistry()
	actions.Register(&action.Definition{
		Name:   "ping",
		Schema: schema.NewObject(),
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			return "handled", nil
		},
	})

	rt, err := router.New(router.Config{
		Actions:          actions,
		MockChatResponse: mockResponse,
	})
	require.NoError(t, err)
	return rt
}
