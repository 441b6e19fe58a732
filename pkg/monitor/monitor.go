package monitor

import "time"

// 訊息方向標記
const (
	MessageTypeUser      = "USER"
	MessageTypeAssistant = "ASSISTANT"
)

// Stage constants name the router pipeline steps as they appear in events.
const (
	StageResolve  = "resolve"  // Chat-completion round trip
	StageParse    = "parse"    // Envelope parsing
	StageLookup   = "lookup"   // Action registry lookup
	StageCoerce   = "coerce"   // Parameter repair
	StageValidate = "validate" // Schema validation
	StageExecute  = "execute"  // Handler execution
	StageRespond  = "respond"  // Final response emission
)

// MonitorMessage 代表一則使用者/助手流量訊息
type MonitorMessage struct {
	Timestamp   time.Time
	MessageType string // "USER" or "ASSISTANT"
	ChannelID   string
	Username    string
	Content     string
}

// Event is one structured stage event emitted by the router during a run.
// The core never writes to the console itself; embedding applications
// subscribe to this stream and log however they like.
type Event struct {
	Timestamp time.Time
	RunID     string         // Identifier shared by all events of one router run
	Stage     string         // One of the Stage* constants
	Message   string         // Short human-readable description
	Payload   map[string]any // Stage-specific details (action name, warnings, raw text on failure)
}

// Monitor 介面定義了監控器的行為
type Monitor interface {
	// Start 啟動監控器
	Start() error

	// Stop 停止監控器
	Stop() error

	// OnMessage 接收並顯示流量訊息
	OnMessage(msg MonitorMessage)

	// OnEvent 接收 Router 階段事件
	OnEvent(ev Event)
}
