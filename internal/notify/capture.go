package notify

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/Phazzie/tabbymctabface/internal/logging"
)

// CaptureSink records every request in memory, optionally mirroring each
// one to a JSONL file. Used by synthetic mode and tests.
type CaptureSink struct {
	mu       sync.Mutex
	requests []Request
	path     string // empty = memory only
	fail     error  // when set, Send returns it
}

// NewCaptureSink creates a capture sink. path may be empty.
func NewCaptureSink(path string) *CaptureSink {
	return &CaptureSink{path: path}
}

// FailWith makes subsequent Sends return err. Pass nil to heal.
func (s *CaptureSink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *CaptureSink) Send(_ context.Context, req Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail != nil {
		return s.fail
	}
	s.requests = append(s.requests, req)

	if s.path != "" {
		f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			logging.Warn("notify", "capture write failed: %v", err)
			return nil
		}
		defer f.Close()
		data, err := json.Marshal(req)
		if err != nil {
			logging.Warn("notify", "capture marshal failed: %v", err)
			return nil
		}
		f.Write(data)
		f.WriteString("\n")
	}
	return nil
}

// Requests returns everything sent so far.
func (s *CaptureSink) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}
