package notify

import (
	"context"

	"github.com/Phazzie/tabbymctabface/internal/logging"
)

// ConsoleSink prints deliveries to the process log. The default sink.
type ConsoleSink struct{}

// NewConsoleSink creates a console sink.
func NewConsoleSink() *ConsoleSink { return &ConsoleSink{} }

func (s *ConsoleSink) Send(_ context.Context, req Request) error {
	if req.Priority == PriorityHigh {
		logging.Info("notify", "*** %s *** %s", req.Title, req.Body)
	} else {
		logging.Info("notify", "%s: %s", req.Title, req.Body)
	}
	return nil
}
