package provisioning

import (
	"context"
	"testing"
)

// testContext builds a Context with a recording observer and fresh metrics.
func testContext(t *testing.T) (*Context, *RecordingObserver) {
	t.Helper()
	observer := NewRecordingObserver(nil)
	return &Context{
		Context:  context.Background(),
		State:    NewState(),
		Observer: observer,
		Metrics:  NewMetrics(""),
	}, observer
}
