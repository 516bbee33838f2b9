// Package notify defines the notification sink contract and the sinks
// shipped with the engine. The engine never depends on how a message is
// actually rendered.
package notify

import "context"

// Priority hints how prominently a message should be shown. Easter eggs
// ride high, generic quips normal.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Request is one display request.
type Request struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Priority Priority `json:"priority"`
}

// Sink accepts display requests. A returned error means the message was
// not shown; the engine reports it as a failed delivery and moves on.
type Sink interface {
	Send(ctx context.Context, req Request) error
}
