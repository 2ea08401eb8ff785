package mail

import (
	"context"
	"log/slog"
	"sync"
)

// HTMLSender is the synchronous delivery the AsyncMailer wraps.
type HTMLSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// AsyncMailer hands each message to a goroutine and returns immediately.
// Delivery failures are logged, never returned.
type AsyncMailer struct {
	next HTMLSender

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewAsyncMailer wraps next.
func NewAsyncMailer(next HTMLSender) *AsyncMailer {
	return &AsyncMailer{next: next}
}

// Send queues the message. It returns ErrClosed after Close has been called.
func (a *AsyncMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	a.wg.Add(1)
	a.mu.Unlock()

	// リクエストのキャンセルで送信が中断されないようにする
	sendCtx := context.WithoutCancel(ctx)
	go func() {
		defer a.wg.Done()
		if err := a.next.Send(sendCtx, to, subject, htmlBody); err != nil {
			slog.Error("email delivery failed", "subject", subject, "error", err)
		}
	}()
	return nil
}

// Close stops accepting messages and waits for in-flight deliveries or ctx.
func (a *AsyncMailer) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
