package gateway

import (
	"github.com/hypecode-tech/saafir/pkg/api"
)

// Re-export types from api package via aliases so channel implementations
// and embedding applications can depend on a single package.
type Channel = api.Channel
type SignalingChannel = api.SignalingChannel
type MessageResponder = api.MessageResponder
type ChannelContext = api.ChannelContext
type UnifiedMessage = api.UnifiedMessage
type SessionContext = api.SessionContext

// MessageHandler is still defined here as a function type, or can be aliased.
type MessageHandler = api.MessageHandler
type MessageProcessor = api.MessageProcessor
