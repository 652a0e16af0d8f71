package middleware

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/dto"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// Timeout gives each request a deadline. The handler runs with a context
// whose cause is dto.ErrTimeout once the deadline passes, so validations
// still waiting on lookups stop with it.
//
// The handler's response is buffered. If the context ends before the handler
// has produced a status, the buffer is dropped and a problem response goes
// out instead: 504 when the deadline passed, 499 when the caller went away
// first. A panic in the handler is re-raised on the serving goroutine, where
// Recovery sees it.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeoutCause(r.Context(), timeout, dto.ErrTimeout)
			defer cancel()

			pw := &pendingResponse{header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(pw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
				if pw.send(w, ctx.Err() != nil) {
					return
				}
			case <-ctx.Done():
				pw.abandon()
			}
			dto.WriteErrorResponse(w, r, deadlineError(r.Context(), ctx))
		})
	}
}

// deadlineError reports why ctx ended: the caller leaving (parent done) or
// the server deadline.
func deadlineError(parent, ctx context.Context) error {
	if parent.Err() != nil {
		return fmt.Errorf("%w: %w", validation.ErrCancelled, context.Cause(parent))
	}
	return context.Cause(ctx)
}

// pendingResponse holds a handler's response until Timeout decides whether
// to send it.
type pendingResponse struct {
	mu        sync.Mutex
	header    http.Header
	body      bytes.Buffer
	code      int
	abandoned bool
}

// Header is read by the handler goroutine only, before the response is sent
// or abandoned.
func (p *pendingResponse) Header() http.Header {
	return p.header
}

func (p *pendingResponse) WriteHeader(code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.code == 0 && !p.abandoned {
		p.code = code
	}
}

func (p *pendingResponse) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.abandoned {
		return 0, http.ErrHandlerTimeout
	}
	if p.code == 0 {
		p.code = http.StatusOK
	}
	return p.body.Write(b)
}

// send copies the response to w. It reports false, sending nothing, when the
// handler produced no status and its context had expired.
func (p *pendingResponse) send(w http.ResponseWriter, expired bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.code == 0 && expired {
		return false
	}
	maps.Copy(w.Header(), p.header)
	if p.code != 0 {
		w.WriteHeader(p.code)
	}
	if p.body.Len() > 0 {
		_, _ = w.Write(p.body.Bytes())
	}
	return true
}

func (p *pendingResponse) abandon() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.abandoned = true
}
