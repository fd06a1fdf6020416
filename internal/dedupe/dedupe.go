// Package dedupe wraps singleflight with a typed result. A Group ensures only
// one load runs for a given key while other callers wait for its result.
package dedupe

import "golang.org/x/sync/singleflight"

type Group[T any] struct {
	g singleflight.Group
}

// Do runs fn once per in-flight key. shared reports whether the result was
// handed to more than one caller.
func (g *Group[T]) Do(key string, fn func() (T, error)) (v T, shared bool, err error) {
	out, err, shared := g.g.Do(key, func() (interface{}, error) {
		return fn()
	})
	if out != nil {
		v = out.(T)
	}
	return v, shared, err
}

// Forget drops an in-flight key so the next call runs fn again.
func (g *Group[T]) Forget(key string) { g.g.Forget(key) }
