package humor

import (
	"time"

	"github.com/Phazzie/tabbymctabface/internal/rules"
	"github.com/Phazzie/tabbymctabface/internal/tabs"
)

// Method says which pool a delivery came from. MethodNone covers throttled
// and failed attempts.
type Method string

const (
	MethodNone      Method = "none"
	MethodEasterEgg Method = "easter_egg"
	MethodGeneric   Method = "generic"
)

// FailureReason classifies why an attempt produced nothing. These are
// outcomes, not errors: Deliver never fails its caller.
type FailureReason string

const (
	// FailureNone means nothing went wrong (including throttled attempts).
	FailureNone FailureReason = ""
	// FailureNoQuips means both candidate pools were empty.
	FailureNoQuips FailureReason = "no_quips_available"
	// FailureDelivery means the notification sink rejected the message.
	FailureDelivery FailureReason = "delivery_failed"
	// FailureEvaluation means the easter-egg check itself errored.
	FailureEvaluation FailureReason = "evaluation_failed"
)

// Outcome describes one delivery attempt. It is returned to the trigger's
// caller and broadcast to subscribers.
type Outcome struct {
	ID                string
	Trigger           tabs.EventKind
	Delivered         bool
	Throttled         bool
	Method            Method
	Text              string
	RuleID            string // set when an easter egg matched
	MatchedConditions []rules.ConditionKind
	Failure           FailureReason
	Detail            string // human-readable failure detail
	At                time.Time
}
