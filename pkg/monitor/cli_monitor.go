package monitor

import (
	"fmt"
	"io"
	"os"
)

// CLIMonitor implements the Monitor interface, providing a direct
// terminal-based visualization of channel traffic and router stage events.
type CLIMonitor struct {
	writer io.Writer // The output destination, typically os.Stdout.
}

// NewCLIMonitor creates a new CLI monitor
func NewCLIMonitor() *CLIMonitor {
	return &CLIMonitor{
		writer: os.Stdout,
	}
}

// Start starts the CLI monitor
func (m *CLIMonitor) Start() error {
	fmt.Fprintln(m.writer, "----------------------------------------------------------------")
	fmt.Fprintln(m.writer, "💬 CLI Monitor Active - channel traffic and router stages appear here")
	fmt.Fprintln(m.writer, "----------------------------------------------------------------")
	return nil
}

// Stop stops the CLI monitor
func (m *CLIMonitor) Stop() error {
	return nil
}

// OnMessage receives and displays a traffic message
func (m *CLIMonitor) OnMessage(msg MonitorMessage) {
	timestamp := msg.Timestamp.Format("2006-01-02 15:04:05")

	var displayMsg string
	if msg.MessageType == MessageTypeAssistant {
		displayMsg = fmt.Sprintf("[AI] %s", msg.Content)
	} else {
		displayMsg = fmt.Sprintf("[%s/%s] %s", msg.ChannelID, msg.Username, msg.Content)
	}

	// Use gray color for timestamp
	fmt.Fprintf(m.writer, "\033[90m[%s]\033[0m %s\n", timestamp, displayMsg)
}

// OnEvent receives and displays a router stage event
func (m *CLIMonitor) OnEvent(ev Event) {
	timestamp := ev.Timestamp.Format("2006-01-02 15:04:05")

	line := fmt.Sprintf("\033[36m[%s]\033[0m %s", ev.Stage, ev.Message)
	if len(ev.Payload) > 0 {
		line += fmt.Sprintf(" %v", ev.Payload)
	}

	fmt.Fprintf(m.writer, "\033[90m[%s]\033[0m \033[90m(%s)\033[0m %s\n", timestamp, ev.RunID, line)
}
