package router

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypecode-tech/saafir/pkg/action"
	"github.com/hypecode-tech/saafir/pkg/envelope"
	"github.com/hypecode-tech/saafir/pkg/llm"
	"github.com/hypecode-tech/saafir/pkg/monitor"
	"github.com/hypecode-tech/saafir/pkg/schema"
)

// stubClient returns a canned completion, or an error when set.
type stubClient struct {
	response string
	err      error
	calls    int
}

func (c *stubClient) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func (c *stubClient) IsTransientError(err error) bool { return false }

func calculatorTree(t *testing.T, invoked *bool, got *map[string]any) *action.Tree {
	t.Helper()
	return action.Branch(map[string]*action.Tree{
		"calculator": action.Branch(map[string]*action.Tree{
			"addNumbers": action.Leaf(&action.Definition{
				Name:        "addNumbers",
				Description: "Add two numbers",
				Schema: schema.NewObject(
					schema.Field{Name: "a", Kind: schema.KindNumber},
					schema.Field{Name: "b", Kind: schema.KindNumber},
				),
				Handler: func(ctx context.Context, params map[string]any) (any, error) {
					if invoked != nil {
						*invoked = true
					}
					if got != nil {
						*got = params
					}
					return params["a"].(float64) + params["b"].(float64), nil
				},
			}),
		}),
	})
}

func TestRunEndToEndWithMock(t *testing.T) {
	var invoked bool
	var got map[string]any

	// Quoted numeric parameters exercise the repair path on top of routing.
	rt, err := New(Config{
		Actions:          calculatorTree(t, &invoked, &got),
		MockChatResponse: `{"actionName": "addNumbers", "parameters": {"a": "2", "b": "3"}, "response": "2 + 3 = 5"}`,
	})
	require.NoError(t, err)

	out, err := rt.Run(context.Background(), "add two and three")
	require.NoError(t, err)

	// The reply is the envelope's response text, never the handler's return.
	assert.Equal(t, "2 + 3 = 5", out)
	assert.True(t, invoked)
	assert.Equal(t, float64(2), got["a"])
	assert.Equal(t, float64(3), got["b"])
}

func TestRunDotPathLookup(t *testing.T) {
	var invoked bool
	rt, err := New(Config{
		Actions:          calculatorTree(t, &invoked, nil),
		MockChatResponse: `{"actionName": "calculator.addNumbers", "parameters": {"a": 1, "b": 1}, "response": "done"}`,
	})
	require.NoError(t, err)

	out, err := rt.Run(context.Background(), "add")
	require.NoError(t, err)
	assert.Equal(t, "done", out)
	assert.True(t, invoked)
}

func TestRunActionNotFound(t *testing.T) {
	var invoked bool
	rt, err := New(Config{
		Actions:          calculatorTree(t, &invoked, nil),
		MockChatResponse: `{"actionName": "multiply", "parameters": {}, "response": "sure"}`,
	})
	require.NoError(t, err)

	_, err = rt.Run(context.Background(), "multiply something")
	var notFound *ActionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "multiply", notFound.Name)
	assert.False(t, invoked, "handler must never run for an unknown action")
}

func TestRunInvalidEnvelope(t *testing.T) {
	raw := "Sorry, I can't help with that."
	rt, err := New(Config{
		Actions:          calculatorTree(t, nil, nil),
		MockChatResponse: raw,
	})
	require.NoError(t, err)

	_, err = rt.Run(context.Background(), "hello")
	var envErr *envelope.InvalidEnvelopeError
	require.ErrorAs(t, err, &envErr)
	assert.Equal(t, raw, envErr.Raw)
}

func TestRunValidationFailure(t *testing.T) {
	var invoked bool
	rt, err := New(Config{
		Actions:          calculatorTree(t, &invoked, nil),
		MockChatResponse: `{"actionName": "addNumbers", "parameters": {"a": 1}, "response": "ok"}`,
	})
	require.NoError(t, err)

	_, err = rt.Run(context.Background(), "add one")
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, invoked)
}

func TestRunHandlerError(t *testing.T) {
	boom := errors.New("disk full")
	actions := action.Branch(map[string]*action.Tree{
		"fail": action.Leaf(&action.Definition{
			Name:   "fail",
			Schema: schema.NewObject(),
			Handler: func(ctx context.Context, params map[string]any) (any, error) {
				return nil, boom
			},
		}),
	})

	rt, err := New(Config{
		Actions:          actions,
		MockChatResponse: `{"actionName": "fail", "parameters": {}, "response": "done"}`,
	})
	require.NoError(t, err)

	_, err = rt.Run(context.Background(), "fail please")
	var execErr *ActionExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "fail", execErr.Action)
	assert.ErrorIs(t, err, boom)
}

func TestRunHandlerPanicRecovered(t *testing.T) {
	actions := action.Branch(map[string]*action.Tree{
		"explode": action.Leaf(&action.Definition{
			Name:   "explode",
			Schema: schema.NewObject(),
			Handler: func(ctx context.Context, params map[string]any) (any, error) {
				panic("kaboom")
			},
		}),
	})

	rt, err := New(Config{
		Actions:          actions,
		MockChatResponse: `{"actionName": "explode", "parameters": {}, "response": "ok"}`,
	})
	require.NoError(t, err)

	_, err = rt.Run(context.Background(), "explode")
	var execErr *ActionExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, execErr.Err.Error(), "kaboom")
}

func TestRunChatClientFailure(t *testing.T) {
	client := &stubClient{err: fmt.Errorf("503 service unavailable")}
	rt, err := New(Config{
		Actions: calculatorTree(t, nil, nil),
		Client:  client,
	})
	require.NoError(t, err)

	_, err = rt.Run(context.Background(), "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intent resolution failed")
	assert.Equal(t, 1, client.calls)
}

func TestRunMockBypassesClient(t *testing.T) {
	client := &stubClient{response: "should not be used"}
	rt, err := New(Config{
		Actions:          calculatorTree(t, nil, nil),
		Client:           client,
		MockChatResponse: `{"actionName": "addNumbers", "parameters": {"a": 1, "b": 2}, "response": "three"}`,
	})
	require.NoError(t, err)

	out, err := rt.Run(context.Background(), "add")
	require.NoError(t, err)
	assert.Equal(t, "three", out)
	assert.Zero(t, client.calls)
}

func TestNewRequiresActionsAndClient(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Actions: action.NewRegistry()})
	assert.Error(t, err)

	_, err = New(Config{Actions: action.NewRegistry(), MockChatResponse: "{}"})
	assert.NoError(t, err)
}

func TestBuildMessages(t *testing.T) {
	rt, err := New(Config{
		Actions:          calculatorTree(t, nil, nil),
		Language:         "Turkish",
		MockChatResponse: "{}",
	})
	require.NoError(t, err)

	msgs := rt.BuildMessages("iki ile üçü topla")
	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, llm.RoleUser, msgs[1].Role)

	// System message carries the auto-generated context with the catalog.
	assert.Contains(t, msgs[0].Content, "addNumbers")

	user := msgs[1].Content
	assert.Contains(t, user, "addNumbers: Add two numbers")
	assert.Contains(t, user, `"a": number`)
	assert.Contains(t, user, "iki ile üçü topla")
	assert.Contains(t, user, `"actionName"`)
	assert.Contains(t, user, `"parameters"`)
	assert.Contains(t, user, `"response"`)
	assert.Contains(t, user, "Turkish")
	assert.Contains(t, user, "never translate")
}

func TestBuildMessagesCustomContext(t *testing.T) {
	rt, err := New(Config{
		Actions:          calculatorTree(t, nil, nil),
		Context:          "You are the HypeBot backend dispatcher.",
		MockChatResponse: "{}",
	})
	require.NoError(t, err)

	msgs := rt.BuildMessages("hi")
	assert.Equal(t, "You are the HypeBot backend dispatcher.", msgs[0].Content)
}

func TestRunEmitsStageEvents(t *testing.T) {
	var stages []string
	rt, err := New(Config{
		Actions:          calculatorTree(t, nil, nil),
		MockChatResponse: `{"actionName": "addNumbers", "parameters": {"a": 1, "b": 2}, "response": "ok"}`,
		Events: func(ev monitor.Event) {
			stages = append(stages, ev.Stage)
		},
	})
	require.NoError(t, err)

	_, err = rt.Run(context.Background(), "add")
	require.NoError(t, err)
	assert.Contains(t, stages, "resolve")
	assert.Contains(t, stages, "lookup")
	assert.Contains(t, stages, "execute")
	assert.Contains(t, stages, "respond")
}
