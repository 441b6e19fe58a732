// Package router is the action resolution and dispatch engine: it asks a
// chat model to classify a free-form request against the registered action
// catalog, repairs and validates the extracted parameters, executes the
// resolved handler, and returns the envelope's response text.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hypecode-tech/saafir/pkg/action"
	"github.com/hypecode-tech/saafir/pkg/coerce"
	"github.com/hypecode-tech/saafir/pkg/envelope"
	"github.com/hypecode-tech/saafir/pkg/llm"
	"github.com/hypecode-tech/saafir/pkg/monitor"
	"github.com/hypecode-tech/saafir/pkg/utils"
)

// DefaultLanguage is used for response text when no language is configured.
const DefaultLanguage = "English"

// Config assembles a Router. Actions and (unless MockChatResponse is set)
// Client are mandatory; everything else has a working default.
type Config struct {
	// Actions is the registered action set, flat or nested.
	Actions action.Resolver
	// Client is the chat-completion boundary.
	Client llm.ChatClient
	// Context overrides the auto-generated system context string.
	Context string
	// Language is the target language for user-facing response text.
	Language string
	// MockChatResponse, when non-empty, is returned verbatim instead of
	// calling the chat client. This is the deterministic-testing hook.
	MockChatResponse string
	// Events, when set, receives one structured event per pipeline stage.
	Events func(monitor.Event)
	// Debugger captures raw completions for offline inspection. Optional.
	Debugger *llm.CompletionDebugger
}

// Router routes natural-language requests to registered actions. A Router
// is immutable after construction; concurrent Run calls are safe as long
// as the registered handlers are.
type Router struct {
	actions  action.Resolver
	client   llm.ChatClient
	context  string
	language string
	mockResp string
	events   func(monitor.Event)
	debugger *llm.CompletionDebugger
}

// New validates the configuration and builds a Router.
func New(cfg Config) (*Router, error) {
	if cfg.Actions == nil {
		return nil, fmt.Errorf("router: no actions configured")
	}
	if cfg.Client == nil && cfg.MockChatResponse == "" {
		return nil, fmt.Errorf("router: no chat client configured")
	}

	language := cfg.Language
	if language == "" {
		language = DefaultLanguage
	}

	return &Router{
		actions:  cfg.Actions,
		client:   cfg.Client,
		context:  cfg.Context,
		language: language,
		mockResp: cfg.MockChatResponse,
		events:   cfg.Events,
		debugger: cfg.Debugger,
	}, nil
}

// Run routes one user request end to end and returns the envelope's
// response text. The handler's own return value is logged for diagnostics
// but never becomes part of the result. Every failure is terminal for this
// call; the router retries nothing.
func (r *Router) Run(ctx context.Context, userInput string) (string, error) {
	runID := utils.GenerateID()
	ctx = context.WithValue(ctx, monitor.RunIDContextKey, runID)

	// (1) Intent resolution: ask the model, or honor the mock override.
	messages := r.BuildMessages(userInput)
	r.emit(runID, monitor.StageResolve, "resolving intent", map[string]any{"input_chars": len(userInput)})

	raw, err := r.complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("intent resolution failed: %w", err)
	}
	if r.debugger != nil {
		r.debugger.Capture(runID, messages, raw)
	}

	// (2) Envelope parsing. The raw text rides along on failure.
	env, err := envelope.Parse(raw)
	if err != nil {
		r.emit(runID, monitor.StageParse, "envelope rejected", map[string]any{"raw": raw})
		return "", err
	}
	r.emit(runID, monitor.StageParse, "envelope accepted", map[string]any{"action": env.ActionName})

	// (3) Registry lookup by name or dot-path.
	path := strings.Split(env.ActionName, ".")
	def, ok := r.actions.Lookup(path)
	if !ok {
		r.emit(runID, monitor.StageLookup, "action not found", map[string]any{"action": env.ActionName})
		return "", &ActionNotFoundError{Name: env.ActionName}
	}
	r.emit(runID, monitor.StageLookup, "action resolved", map[string]any{"action": def.Name})

	// (4) Best-effort parameter repair. Warnings are informational only.
	// Actions registered without a schema take their parameters as-is.
	validated := env.Parameters
	if def.Schema != nil {
		params, warnings := coerce.Params(def.Schema, env.Parameters)
		for _, w := range warnings {
			r.emit(runID, monitor.StageCoerce, "coercion warning", map[string]any{"field": w.Field, "reason": w.Message})
			slog.WarnContext(ctx, "Parameter coercion warning", "action", def.Name, "field", w.Field, "reason", w.Message)
		}

		// (5) Schema validation is the single source of truth for parameters.
		validated, err = def.Schema.Parse(params)
		if err != nil {
			r.emit(runID, monitor.StageValidate, "validation failed", map[string]any{"action": def.Name, "error": err.Error()})
			return "", err
		}
	}

	// (6) Execute the handler with validated, typed parameters.
	r.emit(runID, monitor.StageExecute, "executing handler", map[string]any{"action": def.Name})
	result, err := r.execute(ctx, def, validated)
	if err != nil {
		return "", &ActionExecutionError{Action: def.Name, Err: err}
	}
	slog.DebugContext(ctx, "Handler completed", "action", def.Name, "result", result)

	// (7) The user-facing reply is always the envelope's response text.
	r.emit(runID, monitor.StageRespond, "responding", map[string]any{"response_chars": len(env.Response)})
	return env.Response, nil
}

// complete performs the chat-completion round trip, honoring the mock hook.
func (r *Router) complete(ctx context.Context, messages []llm.Message) (string, error) {
	if r.mockResp != "" {
		return r.mockResp, nil
	}
	return r.client.Complete(ctx, messages)
}

// execute runs the handler, converting a panic into an error so one
// misbehaving action cannot take down the embedding process.
func (r *Router) execute(ctx context.Context, def *action.Definition, params map[string]any) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panicked: %v", rec)
		}
	}()
	return def.Handler(ctx, params)
}

func (r *Router) emit(runID, stage, message string, payload map[string]any) {
	if r.events == nil {
		return
	}
	r.events(monitor.Event{
		Timestamp: time.Now(),
		RunID:     runID,
		Stage:     stage,
		Message:   message,
		Payload:   payload,
	})
}
