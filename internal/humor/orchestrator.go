// Package humor coordinates the delivery pipeline: context snapshot, rule
// evaluation, quip selection, throttling, and notification dispatch.
package humor

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Phazzie/tabbymctabface/internal/content"
	"github.com/Phazzie/tabbymctabface/internal/logging"
	"github.com/Phazzie/tabbymctabface/internal/notify"
	"github.com/Phazzie/tabbymctabface/internal/quips"
	"github.com/Phazzie/tabbymctabface/internal/rules"
	"github.com/Phazzie/tabbymctabface/internal/snapshot"
	"github.com/Phazzie/tabbymctabface/internal/tabs"
)

const notificationTitle = "Tabby McTabface"

// recentOutcomes bounds the in-memory outcome log served to introspection.
const recentOutcomes = 50

// Config wires an orchestrator. Zero-value optional fields get defaults.
type Config struct {
	Provider    tabs.Provider
	Registry    *rules.Registry
	Store       content.Store
	Sink        notify.Sink
	Tier        quips.Level   // active intensity tier, default normal
	MinInterval time.Duration // throttle window, default 5s
	HistorySize int           // dedup window, default 10
	Now         func() time.Time
	RandSource  rand.Source
}

// Subscription identifies one subscriber for unsubscribe.
type Subscription int

// Orchestrator runs the pipeline. Deliver never panics and never returns a
// Go error; every path ends in a typed Outcome.
type Orchestrator struct {
	builder  *snapshot.Builder
	eval     *rules.Evaluator
	history  *quips.History
	selector *quips.Selector
	throttle *Throttle
	store    content.Store
	sink     notify.Sink
	tier     quips.Level
	now      func() time.Time

	// deliverMu serializes throttle check through state update so no
	// other trigger observes a partially updated throttle or history.
	deliverMu sync.Mutex

	subMu   sync.RWMutex
	subs    map[Subscription]func(Outcome)
	nextSub Subscription

	recentMu sync.Mutex
	recent   []Outcome // newest last
}

// New creates an orchestrator from cfg.
func New(cfg Config) *Orchestrator {
	if cfg.Tier == "" {
		cfg.Tier = quips.LevelNormal
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	history := quips.NewHistory(cfg.HistorySize)
	return &Orchestrator{
		builder:  snapshot.NewBuilder(cfg.Provider, cfg.Now),
		eval:     rules.NewEvaluator(cfg.Registry),
		history:  history,
		selector: quips.NewSelector(history, cfg.RandSource),
		throttle: NewThrottle(cfg.MinInterval),
		store:    cfg.Store,
		sink:     cfg.Sink,
		tier:     cfg.Tier,
		now:      cfg.Now,
	}
}

// Deliver runs one trigger through the pipeline and returns its outcome.
func (o *Orchestrator) Deliver(ctx context.Context, ev tabs.Event) Outcome {
	out := Outcome{
		ID:      uuid.NewString(),
		Trigger: ev.Kind,
		Method:  MethodNone,
		At:      o.now(),
	}

	snap := o.builder.Build(ev)

	match, err := o.eval.Evaluate(snap)
	if err != nil {
		// A malformed predicate is an authoring bug; surface it loudly
		// but degrade to silence for the user.
		logging.Warn("humor", "easter egg check failed: %v", err)
		out.Failure = FailureEvaluation
		out.Detail = err.Error()
		return o.finish(out)
	}

	pool, method := o.choosePool(match, ev)
	if len(pool) == 0 {
		out.Failure = FailureNoQuips
		return o.finish(out)
	}

	if match != nil && method == MethodEasterEgg {
		out.RuleID = match.Rule.ID
		out.MatchedConditions = match.MatchedConditions
	}

	// Broadcast happens outside the lock so a subscriber may re-enter.
	return o.finish(o.attempt(ctx, out, pool, method, ev))
}

// attempt runs selection, throttling, and dispatch under deliverMu so no
// concurrent trigger observes a partially updated throttle or history.
func (o *Orchestrator) attempt(ctx context.Context, out Outcome, pool []string, method Method, ev tabs.Event) Outcome {
	o.deliverMu.Lock()
	defer o.deliverMu.Unlock()

	text, ok := o.selector.Pick(pool)
	if !ok {
		out.Failure = FailureNoQuips
		return out
	}

	now := o.now()
	if !o.throttle.Admit(now) {
		logging.Debug("humor", "throttled %s (%.1fs left)", ev.Kind,
			o.throttle.Remaining(now).Seconds())
		out.Throttled = true
		return out
	}

	priority := notify.PriorityNormal
	if method == MethodEasterEgg {
		priority = notify.PriorityHigh
	}
	if err := o.sink.Send(ctx, notify.Request{
		Title:    notificationTitle,
		Body:     text,
		Priority: priority,
	}); err != nil {
		logging.Warn("humor", "sink rejected delivery: %v", err)
		out.Failure = FailureDelivery
		out.Detail = err.Error()
		return out
	}

	// Sink confirmed: consume the dedup window and the throttle together.
	o.history.Record(text)
	o.throttle.MarkDelivered(now)

	out.Delivered = true
	out.Method = method
	out.Text = text
	logging.Info("humor", "delivered (%s) %q", method, logging.Truncate(text, 60))
	return out
}

// choosePool picks the easter-egg pool when a rule matched and its pool is
// non-empty, otherwise the generic pool for the trigger's category. Store
// errors degrade to an empty pool.
func (o *Orchestrator) choosePool(match *rules.Match, ev tabs.Event) ([]string, Method) {
	if match != nil {
		pool, err := o.store.EasterEggPool(match.Rule.Type, o.tier)
		if err != nil {
			logging.Warn("humor", "egg pool fetch failed for %s: %v", match.Rule.Type, err)
		}
		if len(pool) > 0 {
			return pool, MethodEasterEgg
		}
		logging.Debug("humor", "empty egg pool for %s, falling back", match.Rule.Type)
	}

	pool, err := o.store.GenericPool(ev.Kind.Category(), o.tier)
	if err != nil {
		logging.Warn("humor", "generic pool fetch failed for %s: %v", ev.Kind.Category(), err)
		return nil, MethodNone
	}
	return pool, MethodGeneric
}

// finish logs the outcome, appends it to the recent ring, and broadcasts
// to every subscriber. Broadcast covers all outcomes, throttled and failed
// included; subscribers filter on Delivered.
func (o *Orchestrator) finish(out Outcome) Outcome {
	o.recentMu.Lock()
	o.recent = append(o.recent, out)
	if len(o.recent) > recentOutcomes {
		o.recent = o.recent[len(o.recent)-recentOutcomes:]
	}
	o.recentMu.Unlock()

	o.subMu.RLock()
	subs := make([]func(Outcome), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.subMu.RUnlock()

	for _, fn := range subs {
		fn(out)
	}
	return out
}

// Subscribe registers fn for every future outcome.
func (o *Orchestrator) Subscribe(fn func(Outcome)) Subscription {
	o.subMu.Lock()
	defer o.subMu.Unlock()
	if o.subs == nil {
		o.subs = make(map[Subscription]func(Outcome))
	}
	o.nextSub++
	o.subs[o.nextSub] = fn
	return o.nextSub
}

// Unsubscribe removes a subscription. Idempotent.
func (o *Orchestrator) Unsubscribe(sub Subscription) {
	o.subMu.Lock()
	defer o.subMu.Unlock()
	delete(o.subs, sub)
}

// Recent returns up to n recent outcomes, newest last.
func (o *Orchestrator) Recent(n int) []Outcome {
	o.recentMu.Lock()
	defer o.recentMu.Unlock()
	if n <= 0 || n > len(o.recent) {
		n = len(o.recent)
	}
	out := make([]Outcome, n)
	copy(out, o.recent[len(o.recent)-n:])
	return out
}

// History exposes the dedup window for introspection.
func (o *Orchestrator) History() []string {
	return o.history.Items()
}

// Cooldown reports the time until the next delivery would be admitted.
func (o *Orchestrator) Cooldown() time.Duration {
	return o.throttle.Remaining(o.now())
}
