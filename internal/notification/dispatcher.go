package notification

import (
	"context"
	"log"
	"time"

	"referhub/internal/infrastructure/mailer"
)

const sendTimeout = 30 * time.Second

// Dispatcher sends email off the request path. Sends are best-effort: a
// full queue or a failed send is logged and dropped.
type Dispatcher struct {
	mailer mailer.Mailer
	pool   *WorkerPool
	logger *log.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

func NewDispatcher(m mailer.Mailer, workers int, logger *log.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 2
	}
	pool := NewWorkerPool(workers, workers*32)
	pool.SetRateLimit(10)

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{mailer: m, pool: pool, logger: logger, cancel: cancel, done: make(chan struct{})}

	results := pool.Run(ctx)
	go func() {
		defer close(d.done)
		for res := range results {
			if res.Err != nil && d.logger != nil {
				d.logger.Printf("[Mail] send failed: %v", res.Err)
			}
		}
	}()
	return d
}

func (d *Dispatcher) Notify(msg mailer.Message) {
	if d == nil || d.mailer == nil || msg.To == "" {
		return
	}
	ok := d.pool.TrySubmit(func(ctx context.Context) error {
		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()
		return d.mailer.Send(sendCtx, msg)
	})
	if !ok && d.logger != nil {
		d.logger.Printf("[Mail] dropped | reason=queue_full to=%s subject=%q", msg.To, msg.Subject)
	}
}

// Close stops accepting messages and waits for queued ones up to ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}
	d.pool.Close()
	select {
	case <-d.done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		return ctx.Err()
	}
}
