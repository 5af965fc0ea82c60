// Package delay provides an immutable value container that releases its
// content only after a configured point in time has passed. Before that
// point, access either fails, falls back to a default or is deferred to a
// scheduled callback.
package delay

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/davecgh/go-spew/spew"
	farm "github.com/dgryski/go-farm"

	"github.com/RedRem95/DelayObject/common/clock"
	"github.com/RedRem95/DelayObject/common/scheduler"
)

type (
	// Object wraps a value of type T together with the time at which the
	// value becomes accessible. An Object is immutable after construction;
	// readiness is recomputed against the clock on every query and never
	// cached, so all accessors are safe for concurrent use without
	// coordination.
	Object[T any] struct {
		content    T
		readyAt    time.Time
		timeSource clock.TimeSource
	}

	// Option customizes construction of an Object.
	Option func(*objectOptions)

	objectOptions struct {
		timeSource clock.TimeSource
	}
)

// WithTimeSource makes the Object read time from the given source instead
// of the system clock.
func WithTimeSource(timeSource clock.TimeSource) Option {
	return func(opts *objectOptions) {
		opts.timeSource = timeSource
	}
}

func newObject[T any](content T, readyAt func(clock.TimeSource) time.Time, opts []Option) *Object[T] {
	options := objectOptions{
		timeSource: clock.NewRealTimeSource(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Object[T]{
		content:    content,
		readyAt:    readyAt(options.timeSource),
		timeSource: options.timeSource,
	}
}

// Of wraps content to be released once d has elapsed from now.
func Of[T any](content T, d time.Duration, opts ...Option) *Object[T] {
	return newObject(content, func(ts clock.TimeSource) time.Time {
		return ts.Now().Add(d)
	}, opts)
}

// OfUnit wraps content to be released once amount of unit has elapsed from
// now. Calendar units such as Days or Months follow calendar arithmetic,
// not fixed durations.
func OfUnit[T any](content T, amount int64, unit Unit, opts ...Option) *Object[T] {
	return newObject(content, func(ts clock.TimeSource) time.Time {
		return unit.addTo(ts.Now(), amount)
	}, opts)
}

// OfTime wraps content to be released at readyAt, taken verbatim. A time
// in the past is legal and yields an immediately ready Object.
func OfTime[T any](content T, readyAt time.Time, opts ...Option) *Object[T] {
	return newObject(content, func(clock.TimeSource) time.Time {
		return readyAt
	}, opts)
}

// ReadyAt returns the time at which the content becomes accessible.
func (o *Object[T]) ReadyAt() time.Time {
	return o.readyAt
}

// IsReady reports whether the current time is strictly after ReadyAt. Two
// calls a nanosecond apart may legitimately differ.
func (o *Object[T]) IsReady() bool {
	return o.timeSource.Now().After(o.readyAt)
}

// Get returns the content if it is ready, otherwise a *NotReadyError
// carrying the ready time.
func (o *Object[T]) Get() (T, error) {
	if o.IsReady() {
		return o.content, nil
	}
	var zero T
	return zero, newNotReadyError(o.readyAt, o.timeSource.Now())
}

// GetOrElse returns the content if it is ready, otherwise other.
func (o *Object[T]) GetOrElse(other T) T {
	if o.IsReady() {
		return o.content
	}
	return other
}

// GetOrElseCompute returns the content if it is ready, otherwise the result
// of supplier. supplier is only invoked when the content is not ready.
func (o *Object[T]) GetOrElseCompute(supplier func() T) T {
	if o.IsReady() {
		return o.content
	}
	return supplier()
}

// GetOrElseErr returns the content if it is ready, otherwise the zero value
// and the error produced by errSupplier. errSupplier is only invoked when
// the content is not ready.
func (o *Object[T]) GetOrElseErr(errSupplier func() error) (T, error) {
	if o.IsReady() {
		return o.content, nil
	}
	var zero T
	return zero, errSupplier()
}

// IfReady invokes action with the content if it is ready, otherwise does
// nothing.
func (o *Object[T]) IfReady(action func(T)) {
	if o.IsReady() {
		action(o.content)
	}
}

// IfReadyOrElse invokes exactly one of the two callbacks: action with the
// content if it is ready, emptyAction otherwise.
func (o *Object[T]) IfReadyOrElse(action func(T), emptyAction func()) {
	if o.IsReady() {
		action(o.content)
	} else {
		emptyAction()
	}
}

// RegisterCallback schedules callback to run once the content becomes
// ready, on the process-wide shared scheduler. The shared scheduler runs on
// a single worker so callbacks registered through this path should be
// short; use RegisterCallbackOn with a dedicated scheduler for anything
// heavier.
func (o *Object[T]) RegisterCallback(callback func()) {
	o.RegisterCallbackOn(callback, sharedProvider.Shared())
}

// RegisterCallbackOn schedules callback on s with a delay of ReadyAt minus
// now, truncated to whole milliseconds. A delay that is already negative or
// zero is still scheduled; the scheduler runs it essentially immediately,
// never inline. Registered callbacks cannot be cancelled. A nil callback or
// scheduler panics.
func (o *Object[T]) RegisterCallbackOn(callback func(), s scheduler.Scheduler) {
	if callback == nil {
		panic("delay: nil callback")
	}
	if s == nil {
		panic("delay: nil scheduler")
	}
	remaining := o.readyAt.Sub(o.timeSource.Now()).Truncate(time.Millisecond)
	s.Schedule(remaining, scheduler.Task(callback))
}

// Await blocks until the content is ready or ctx is done, whichever comes
// first.
func (o *Object[T]) Await(ctx context.Context) (T, error) {
	if o.IsReady() {
		return o.content, nil
	}

	readyChan := make(chan struct{})
	// readiness requires the clock to move strictly past readyAt
	remaining := o.readyAt.Sub(o.timeSource.Now()) + time.Nanosecond
	timer := o.timeSource.AfterFunc(remaining, func() { close(readyChan) })
	defer timer.Stop()

	select {
	case <-readyChan:
		return o.content, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Equal reports structural equality over (content, ready time). The clock
// an Object reads from does not participate.
func (o *Object[T]) Equal(other *Object[T]) bool {
	if o == other {
		return true
	}
	if other == nil {
		return false
	}
	return o.readyAt.Equal(other.readyAt) && reflect.DeepEqual(o.content, other.content)
}

// hashConfig renders content without pointer addresses and with sorted map
// keys, so the rendering is canonical for everything Equal treats as equal.
var hashConfig = spew.ConfigState{
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Hash returns a fingerprint of (content, ready time). Objects that are
// Equal hash to the same value; pointer payloads hash by the pointed-to
// value, matching Equal's deep comparison.
func (o *Object[T]) Hash() uint64 {
	return farm.Fingerprint64([]byte(hashConfig.Sprintf("%v|%d", o.content, o.readyAt.UnixNano())))
}

func (o *Object[T]) String() string {
	return fmt.Sprintf("Content: [%v] with ready time [%v]", o.content, o.readyAt)
}
