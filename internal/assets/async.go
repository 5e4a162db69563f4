package assets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taharazashaikh97/roads/internal/logger"
)

// Result is the outcome of an asynchronous load.
type Result[T any] struct {
	Path  string
	Value T
	Err   error
}

// Pending is an in-flight asynchronous load. Poll it from one goroutine.
type Pending[T any] struct {
	path string
	ch   chan Result[T]
	done bool
}

// LoadAsync reads path from m and decodes it on a new goroutine.
func LoadAsync[T any](m *Manager, path string, decode func([]byte) (T, error)) *Pending[T] {
	p := &Pending[T]{path: path, ch: make(chan Result[T], 1)}
	log := logger.Named("assets")

	go func() {
		start := time.Now()
		res := Result[T]{Path: path}

		data, err := m.Load(path)
		if err != nil {
			res.Err = err
		} else if res.Value, err = decode(data); err != nil {
			res.Err = fmt.Errorf("decoding %s: %w", path, err)
		}

		log.Debug("asset load finished",
			zap.String("path", path),
			zap.Duration("took", time.Since(start)),
			zap.Bool("ok", res.Err == nil))
		p.ch <- res
	}()

	return p
}

// Path returns the asset path being loaded.
func (p *Pending[T]) Path() string {
	return p.path
}

// Poll returns the result without blocking. ok is true exactly once, on
// the first call after the load completes.
func (p *Pending[T]) Poll() (res Result[T], ok bool) {
	if p.done {
		return res, false
	}
	select {
	case res = <-p.ch:
		p.done = true
		return res, true
	default:
		return res, false
	}
}

// Done reports whether the result has been delivered by Poll or Wait.
func (p *Pending[T]) Done() bool {
	return p.done
}

// Wait blocks until the load completes or ctx is done.
func (p *Pending[T]) Wait(ctx context.Context) (Result[T], error) {
	if p.done {
		return Result[T]{}, fmt.Errorf("%s: result already delivered", p.path)
	}
	select {
	case res := <-p.ch:
		p.done = true
		return res, nil
	case <-ctx.Done():
		return Result[T]{}, ctx.Err()
	}
}

// Slot holds a value that is assigned at most once.
type Slot[T any] struct {
	value T
	set   bool
}

// Set stores v if the slot is empty and reports whether it did.
func (s *Slot[T]) Set(v T) bool {
	if s.set {
		return false
	}
	s.value = v
	s.set = true
	return true
}

// Get returns the value and whether it has been set.
func (s *Slot[T]) Get() (T, bool) {
	return s.value, s.set
}

// IsSet reports whether the slot holds a value.
func (s *Slot[T]) IsSet() bool {
	return s.set
}
