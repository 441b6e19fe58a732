package llm

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebuggerDisabledWritesNothing(t *testing.T) {
	t.Chdir(t.TempDir())

	d := NewCompletionDebugger("test", false)
	d.Capture("run1", []Message{NewUserMessage("hi")}, "raw output")

	_, err := os.Stat("debug")
	assert.True(t, os.IsNotExist(err))
}

func TestDebuggerCaptureWritesExchange(t *testing.T) {
	t.Chdir(t.TempDir())

	d := NewCompletionDebugger("test", true)
	d.Capture("run1", []Message{
		NewSystemMessage("context"),
		NewUserMessage("add 2 and 3"),
	}, `{"actionName":"add"}`)

	entries, err := os.ReadDir(filepath.Join("debug", "completions", "test"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "run1")

	data, err := os.ReadFile(filepath.Join("debug", "completions", "test", entries[0].Name()))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "--- system ---")
	assert.Contains(t, content, "add 2 and 3")
	assert.Contains(t, content, `{"actionName":"add"}`)
}

func TestDebuggerPrunesExpiredCaptures(t *testing.T) {
	t.Chdir(t.TempDir())

	dir := filepath.Join("debug", "completions", "test")
	require.NoError(t, os.MkdirAll(dir, 0755))

	expired := fmt.Sprintf("%08x_old.log", time.Now().Add(-2*CaptureRetention).Unix())
	fresh := fmt.Sprintf("%08x_new.log", time.Now().Unix())
	unrelated := "README.txt"
	for _, name := range []string{expired, fresh, unrelated} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	NewCompletionDebugger("test", true)

	_, err := os.Stat(filepath.Join(dir, expired))
	assert.True(t, os.IsNotExist(err), "expired capture should be pruned")
	_, err = os.Stat(filepath.Join(dir, fresh))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, unrelated))
	assert.NoError(t, err, "files without a timestamp prefix are left alone")
}
