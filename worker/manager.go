package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Manager starts and supervises a set of workers until the context is
// cancelled, then waits for all of them to exit.
type Manager struct {
	workers []Worker
}

func NewManager(ws ...Worker) *Manager {
	return &Manager{workers: ws}
}

func (m *Manager) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	errs := make(chan error, len(m.workers))
	for _, w := range m.workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			slog.Debug("manager: worker started", "worker", fmt.Sprintf("%T", w))
			if err := w.Start(ctx); err != nil {
				errs <- err
			}
		}(w)
	}
	<-ctx.Done()
	wg.Wait()
	close(errs)
	// Report the first worker error, if any surfaced before shutdown.
	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
