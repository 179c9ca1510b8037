// Package signals lets plugins subscribe to named points of a site
// generation pass.
//
// Receivers are plain functions connected once during setup. A Signal is not
// safe for concurrent Connect and Send; generation runs on one goroutine.
package signals

import "errors"

// Signal dispatches a value of type T to every connected receiver.
type Signal[T any] struct {
	name      string
	receivers []func(T) error
}

// New returns an empty signal identified by name.
func New[T any](name string) *Signal[T] {
	return &Signal[T]{name: name}
}

// Name returns the signal's identifier.
func (s *Signal[T]) Name() string {
	return s.name
}

// Connect subscribes fn. Receivers run in connection order.
func (s *Signal[T]) Connect(fn func(T) error) {
	s.receivers = append(s.receivers, fn)
}

// Len reports the number of connected receivers.
func (s *Signal[T]) Len() int {
	return len(s.receivers)
}

// Send calls every receiver with v. A failing receiver does not stop the
// others; all failures are returned joined.
func (s *Signal[T]) Send(v T) error {
	var errs []error
	for _, fn := range s.receivers {
		if err := fn(v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
