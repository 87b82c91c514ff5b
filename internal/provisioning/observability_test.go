package provisioning

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.DebugLevel)
	return logger
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestNewConsoleObserver_DefaultsToStandardLogger(t *testing.T) {
	t.Parallel()
	observer := NewConsoleObserver(nil)
	assert.Same(t, logrus.StandardLogger(), observer.logger)
}

func TestConsoleObserver_Event(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	observer := NewConsoleObserver(jsonLogger(&buf))

	LogResourceCreated(observer, "deploy", "bucket", "demo-artifacts", "demo-artifacts")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "bucket created", lines[0]["msg"])
	assert.Equal(t, "resource.created", lines[0]["event"])
	assert.Equal(t, "deploy", lines[0]["phase"])
	assert.Equal(t, "demo-artifacts", lines[0]["resource"])
	assert.Equal(t, "bucket", lines[0]["type"])
}

func TestConsoleObserver_FailureLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	observer := NewConsoleObserver(jsonLogger(&buf))

	LogPhaseFailed(observer, "credentials", errors.New("denied"))
	LogResourceFailed(observer, "deploy", "function", "demoFn", errors.New("throttled"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "failed: denied", lines[0]["msg"])
	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "function failed: throttled", lines[1]["msg"])
}

func TestConsoleObserver_PhaseStartIsDebug(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := jsonLogger(&buf)
	logger.SetLevel(logrus.InfoLevel)
	observer := NewConsoleObserver(logger)

	LogPhaseStart(observer, "package")
	assert.Empty(t, buf.String())
}

func TestConsoleObserver_WithFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	parent := NewConsoleObserver(jsonLogger(&buf))
	child := parent.WithFields(map[string]string{"run": "abc", "function": "demoFn"})

	child.Event(Event{Type: EventResourceExists, Message: "bucket already exists", Fields: map[string]string{"function": "override"}})
	parent.Printf("plain %d", 1)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "abc", lines[0]["run"])
	assert.Equal(t, "override", lines[0]["function"])
	assert.Equal(t, "plain 1", lines[1]["msg"])
	assert.NotContains(t, lines[1], "run")
}

func TestConsoleObserver_Progress(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	observer := NewConsoleObserver(jsonLogger(&buf))

	observer.Progress("run", 0, 0)
	observer.Progress("run", 1, 4)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "progress 0/0", lines[0]["msg"])
	assert.Equal(t, "progress 1/4 (25%)", lines[1]["msg"])
}

func TestRecordingObserver_RecordsAndForwards(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	recorder := NewRecordingObserver(NewConsoleObserver(jsonLogger(&buf)))

	LogResourceExists(recorder, "deploy", "bucket", "b", "b")
	child := recorder.WithFields(map[string]string{"run": "r1"})
	LogResourceUpdated(child, "deploy", "function", "demoFn", "7")

	events := recorder.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventResourceExists, events[0].Type)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, "r1", events[1].Fields["run"])
	assert.Equal(t, "7", events[1].Fields["id"])

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "r1", lines[1]["run"])
}

func TestRecordingObserver_Concurrent(t *testing.T) {
	t.Parallel()
	recorder := NewRecordingObserver(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recorder.Event(Event{Type: EventProgress})
		}()
	}
	wg.Wait()

	assert.Len(t, recorder.EventsOfType(EventProgress), 20)
}

func TestRecordingObserver_EventsIsCopy(t *testing.T) {
	t.Parallel()
	recorder := NewRecordingObserver(nil)
	recorder.Event(Event{Type: EventResourceDeleted})

	events := recorder.Events()
	events[0].Type = EventResourceFailed

	assert.Equal(t, EventResourceDeleted, recorder.Events()[0].Type)
}
