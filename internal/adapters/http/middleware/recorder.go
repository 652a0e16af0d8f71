// Package middleware provides HTTP middleware for the inbound request pipeline.
//
// The server installs them in this order:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → Timeout → Handler
//
// Timeout sits innermost so that its deadline reaches the signup validation
// and the lookups it starts, while Logging and OpenTelemetry still see the
// 504 or 499 it writes.
package middleware

import "net/http"

// statusRecorder remembers what a handler sent so the outer middleware can
// log, measure, or decide whether a response can still be written.
type statusRecorder struct {
	http.ResponseWriter
	code    int
	started bool
	bytes   int64
}

func record(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w}
}

// status is the code sent, 200 when the handler wrote a body without one,
// and 200 as well when nothing was written yet (net/http's own default).
func (s *statusRecorder) status() int {
	if s.code == 0 {
		return http.StatusOK
	}
	return s.code
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.started {
		return
	}
	s.code = code
	s.started = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.started = true
	n, err := s.ResponseWriter.Write(b)
	s.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
