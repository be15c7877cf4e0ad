package resilience

import (
	"fmt"

	"golang.org/x/sync/singleflight"
)

// Flight collapses concurrent calls for the same key into one execution
// and hands every caller the same typed result.
type Flight[T any] struct {
	group singleflight.Group
}

// Do runs fn once per key at a time. shared reports whether the result was
// produced for another caller as well.
func (f *Flight[T]) Do(key string, fn func() (T, error)) (value T, shared bool, err error) {
	out, err, shared := f.group.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return value, shared, err
	}
	typed, ok := out.(T)
	if !ok && out != nil {
		return value, shared, fmt.Errorf("flight %q produced %T", key, out)
	}
	return typed, shared, nil
}

// Forget drops an in-flight key so the next Do starts a fresh call.
func (f *Flight[T]) Forget(key string) {
	f.group.Forget(key)
}
