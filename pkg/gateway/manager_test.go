package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypecode-tech/saafir/pkg/api"
	"github.com/hypecode-tech/saafir/pkg/monitor"
)

// fakeChannel records lifecycle and send calls.
type fakeChannel struct {
	id      string
	started bool
	stopped bool
	sent    []string
	signals []string
}

func (c *fakeChannel) ID() string                         { return c.id }
func (c *fakeChannel) Start(ctx api.ChannelContext) error { c.started = true; return nil }
func (c *fakeChannel) Stop() error                        { c.stopped = true; return nil }
func (c *fakeChannel) Send(session api.SessionContext, message string) error {
	c.sent = append(c.sent, message)
	return nil
}

// signalChannel additionally implements SignalingChannel.
type signalChannel struct {
	fakeChannel
}

func (c *signalChannel) SendSignal(session api.SessionContext, signal string) error {
	c.signals = append(c.signals, signal)
	return nil
}

// recordingMonitor collects broadcast traffic.
type recordingMonitor struct {
	messages []monitor.MonitorMessage
}

func (m *recordingMonitor) Start() error { return nil }
func (m *recordingMonitor) Stop() error  { return nil }
func (m *recordingMonitor) OnMessage(msg monitor.MonitorMessage) {
	m.messages = append(m.messages, msg)
}
func (m *recordingMonitor) OnEvent(ev monitor.Event) {}

func session(channelID string) api.SessionContext {
	return api.SessionContext{ChannelID: channelID, UserID: "u1", ChatID: "c1", Username: "alice"}
}

func TestManagerLifecycle(t *testing.T) {
	gw := NewGatewayManager()
	ch := &fakeChannel{id: "test"}
	gw.Register(ch)

	require.NoError(t, gw.StartAll())
	assert.True(t, ch.started)

	gw.StopAll()
	assert.True(t, ch.stopped)
}

func TestManagerSendReply(t *testing.T) {
	gw := NewGatewayManager()
	ch := &fakeChannel{id: "test"}
	gw.Register(ch)

	mon := &recordingMonitor{}
	gw.SetMonitor(mon)

	require.NoError(t, gw.SendReply(session("test"), "hello"))
	assert.Equal(t, []string{"hello"}, ch.sent)

	require.Len(t, mon.messages, 1)
	assert.Equal(t, monitor.MessageTypeAssistant, mon.messages[0].MessageType)
	assert.Equal(t, "hello", mon.messages[0].Content)

	assert.Error(t, gw.SendReply(session("missing"), "x"))
}

func TestManagerSendSignal(t *testing.T) {
	gw := NewGatewayManager()
	plain := &fakeChannel{id: "plain"}
	signaling := &signalChannel{fakeChannel: fakeChannel{id: "sig"}}
	gw.Register(plain)
	gw.Register(signaling)

	require.NoError(t, gw.SendSignal(session("sig"), "thinking"))
	assert.Equal(t, []string{"thinking"}, signaling.signals)

	// Channels without signal support ignore the call silently.
	require.NoError(t, gw.SendSignal(session("plain"), "thinking"))
	assert.Empty(t, plain.signals)
}

func TestManagerOnMessageForwardsToHandler(t *testing.T) {
	gw := NewGatewayManager()
	mon := &recordingMonitor{}
	gw.SetMonitor(mon)

	var received *UnifiedMessage
	gw.SetMessageHandler(func(msg *UnifiedMessage) { received = msg })

	in := &UnifiedMessage{Session: session("test"), Content: "what's the weather"}
	gw.OnMessage("test", in)

	require.NotNil(t, received)
	assert.Equal(t, "what's the weather", received.Content)

	require.Len(t, mon.messages, 1)
	assert.Equal(t, monitor.MessageTypeUser, mon.messages[0].MessageType)
}

func TestBuilderAssemblesEverything(t *testing.T) {
	ch := &fakeChannel{id: "test"}
	mon := &recordingMonitor{}

	var handled bool
	gw, err := NewGatewayBuilder().
		WithMonitor(mon).
		WithChannel(ch).
		WithHandlerFactory(func(responder api.MessageResponder) api.MessageProcessor {
			return api.MessageHandler(func(msg *api.UnifiedMessage) { handled = true })
		}).
		Build()
	require.NoError(t, err)

	assert.True(t, ch.started)
	assert.Same(t, mon, gw.Monitor())

	gw.OnMessage("test", &UnifiedMessage{Session: session("test")})
	assert.True(t, handled)
}
