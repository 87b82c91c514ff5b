package provisioning

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the minimal printf-style logging surface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during a deploy.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured deployment event.
type Event struct {
	Type      EventType         `json:"type"`
	Phase     string            `json:"phase,omitempty"`
	Message   string            `json:"message"`
	Resource  string            `json:"resource,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// EventType represents the type of deployment event.
type EventType string

const (
	// EventPhaseStarted indicates a phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceUpdating indicates an existing resource is being changed.
	EventResourceUpdating EventType = "resource.updating"
	// EventResourceUpdated indicates an existing resource was changed.
	EventResourceUpdated EventType = "resource.updated"
	// EventResourceFailed indicates an operation on a resource failed.
	EventResourceFailed EventType = "resource.failed"
	// EventResourceDeleted indicates a resource was removed.
	EventResourceDeleted EventType = "resource.deleted"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// ConsoleObserver implements Observer on top of a logrus logger.
type ConsoleObserver struct {
	logger        *logrus.Logger
	contextFields map[string]string
}

// NewConsoleObserver creates a console observer writing through logger.
// A nil logger means the logrus standard logger.
func NewConsoleObserver(logger *logrus.Logger) *ConsoleObserver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ConsoleObserver{
		logger:        logger,
		contextFields: make(map[string]string),
	}
}

// Printf logs an unstructured message at info level.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	o.entry(nil).Infof(format, v...)
}

// Event implements Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	entry := o.entry(event.Fields).WithTime(event.Timestamp).WithField("event", string(event.Type))
	if event.Phase != "" {
		entry = entry.WithField("phase", event.Phase)
	}
	if event.Resource != "" {
		entry = entry.WithField("resource", event.Resource)
	}
	entry.Log(eventLevel(event.Type), event.Message)
}

// Progress implements Observer interface.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	entry := o.entry(nil).WithFields(logrus.Fields{
		"event":   string(EventProgress),
		"phase":   phase,
		"current": current,
		"total":   total,
	})
	if total == 0 {
		entry.Debugf("progress %d/%d", current, total)
		return
	}
	entry.Debugf("progress %d/%d (%d%%)", current, total, (current*100)/total)
}

// WithFields implements Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &ConsoleObserver{
		logger:        o.logger,
		contextFields: newFields,
	}
}

// entry builds a log entry carrying context fields, overridden by extra.
func (o *ConsoleObserver) entry(extra map[string]string) *logrus.Entry {
	fields := make(logrus.Fields, len(o.contextFields)+len(extra))
	for k, v := range o.contextFields {
		fields[k] = v
	}
	for k, v := range extra {
		fields[k] = v
	}
	return o.logger.WithFields(fields)
}

func eventLevel(t EventType) logrus.Level {
	switch t {
	case EventPhaseFailed, EventResourceFailed:
		return logrus.ErrorLevel
	case EventPhaseStarted, EventProgress:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// RecordingObserver forwards to another observer and keeps every event.
// It is safe for concurrent use.
type RecordingObserver struct {
	next   Observer
	fields map[string]string

	mu     *sync.Mutex
	events *[]Event
}

// NewRecordingObserver wraps next. A nil next only records.
func NewRecordingObserver(next Observer) *RecordingObserver {
	return &RecordingObserver{
		next:   next,
		fields: map[string]string{},
		mu:     &sync.Mutex{},
		events: &[]Event{},
	}
}

// Printf forwards to the wrapped observer.
func (r *RecordingObserver) Printf(format string, v ...interface{}) {
	if r.next != nil {
		r.next.Printf(format, v...)
	}
}

// Event records the event with context fields merged in, then forwards it.
func (r *RecordingObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	merged := make(map[string]string, len(r.fields)+len(event.Fields))
	for k, v := range r.fields {
		merged[k] = v
	}
	for k, v := range event.Fields {
		merged[k] = v
	}
	event.Fields = merged

	r.mu.Lock()
	*r.events = append(*r.events, event)
	r.mu.Unlock()

	if r.next != nil {
		r.next.Event(event)
	}
}

// Progress forwards to the wrapped observer.
func (r *RecordingObserver) Progress(phase string, current, total int) {
	if r.next != nil {
		r.next.Progress(phase, current, total)
	}
}

// WithFields returns a child that records into the same event list.
func (r *RecordingObserver) WithFields(fields map[string]string) Observer {
	child := &RecordingObserver{
		fields: make(map[string]string, len(r.fields)+len(fields)),
		mu:     r.mu,
		events: r.events,
	}
	for k, v := range r.fields {
		child.fields[k] = v
	}
	for k, v := range fields {
		child.fields[k] = v
	}
	if r.next != nil {
		child.next = r.next.WithFields(fields)
	}
	return child
}

// Events returns a copy of the recorded events.
func (r *RecordingObserver) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(*r.events))
	copy(out, *r.events)
	return out
}

// EventsOfType returns the recorded events of type t.
func (r *RecordingObserver) EventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": resourceID},
	})
}

// LogResourceExists logs when a resource already exists.
func LogResourceExists(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": resourceID},
	})
}

// LogResourceUpdating logs the start of a change to an existing resource.
func LogResourceUpdating(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceUpdating,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("updating %s", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceUpdated logs a successful change to an existing resource.
func LogResourceUpdated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceUpdated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s updated", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": resourceID},
	})
}

// LogResourceFailed logs a failed operation on a resource.
func LogResourceFailed(observer Observer, phase, resourceType, resourceName string, err error) {
	observer.Event(Event{
		Type:     EventResourceFailed,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s failed: %v", resourceType, err),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceDeleted logs a successful resource deletion event.
func LogResourceDeleted(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s deleted", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}
