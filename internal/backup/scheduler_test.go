package backup

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// captureDestination records every payload written to it.
type captureDestination struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (d *captureDestination) Write(_ context.Context, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	d.payloads = append(d.payloads, cp)
	return nil
}

func (d *captureDestination) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.payloads)
}

func (d *captureDestination) last() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.payloads) == 0 {
		return nil
	}
	return d.payloads[len(d.payloads)-1]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
