package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hypecode-tech/saafir/pkg/api"
	"github.com/hypecode-tech/saafir/pkg/config"
	"github.com/hypecode-tech/saafir/pkg/envelope"
	"github.com/hypecode-tech/saafir/pkg/router"
	"github.com/hypecode-tech/saafir/pkg/schema"
)

// RouteHandler bridges the Gateway and the Router: it receives unified
// messages from channels, runs one routing pass per message, and sends the
// resulting response text (or a user-facing error) back through the Gateway.
type RouteHandler struct {
	rt           *router.Router       // The action resolution engine
	gw           api.MessageResponder // Manager for sending replies back to communication channels
	systemConfig *config.SystemConfig // Technical/engine-level configuration parameters
}

// NewMessageHandler initializes a RouteHandler instance and returns a closure
// compatible with the gateway.MessageHandler type.
// Parameters:
//   - rt: The router that resolves and dispatches actions.
//   - gw: The responder for routing replies back to the source channel.
//   - sysCfg: Engine-level configuration (timeouts, retries).
//
// Returns:
//   - A MessageHandler function that can be registered with the Gateway.
func NewMessageHandler(rt *router.Router, gw api.MessageResponder, sysCfg *config.SystemConfig) func(*api.UnifiedMessage) {
	h := &RouteHandler{
		rt:           rt,
		gw:           gw,
		systemConfig: sysCfg,
	}
	return h.OnMessage
}

// OnMessage is the primary entry point for processing incoming user messages.
// Each message is routed independently; there is no session history and no
// retry loop here — one request, one routing pass, one reply.
func (h *RouteHandler) OnMessage(msg *api.UnifiedMessage) {
	start := time.Now()
	slog.Info("Message received", "channel", msg.Session.ChannelID, "user", msg.Session.Username, "chars", len(msg.Content))

	timeout := time.Duration(h.systemConfig.LLMTimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Let the platform show a typing indicator while the model thinks
	h.gw.SendSignal(msg.Session, "thinking")

	response, err := h.rt.Run(ctx, msg.Content)
	if err != nil {
		h.gw.SendReply(msg.Session, userFacingError(err))
		slog.Error("Routing failed", "channel", msg.Session.ChannelID, "error", err, "duration", time.Since(start).String())
		return
	}

	if err := h.gw.SendReply(msg.Session, response); err != nil {
		slog.Error("Failed to send reply", "channel", msg.Session.ChannelID, "error", err)
	}
	slog.Info("Routing finished", "channel", msg.Session.ChannelID, "duration", time.Since(start).String())
}

// userFacingError maps terminal routing errors to short reply strings.
// Internal details stay in the logs.
func userFacingError(err error) string {
	var envErr *envelope.InvalidEnvelopeError
	var notFound *router.ActionNotFoundError
	var valErr *schema.ValidationError
	var execErr *router.ActionExecutionError

	switch {
	case errors.As(err, &envErr):
		return "❌ The model returned an unreadable answer, please try rephrasing."
	case errors.As(err, &notFound):
		return fmt.Sprintf("❌ No action matches your request (%s).", notFound.Name)
	case errors.As(err, &valErr):
		return fmt.Sprintf("❌ Your request is missing or has invalid details: %v", valErr)
	case errors.As(err, &execErr):
		return fmt.Sprintf("❌ The action failed while running: %v", execErr.Err)
	case errors.Is(err, context.DeadlineExceeded):
		return "⚠️ The request timed out, please try again."
	default:
		return fmt.Sprintf("❌ Error: %v", err)
	}
}
