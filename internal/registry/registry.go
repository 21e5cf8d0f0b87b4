// Package registry holds the live entities of a session in collections that
// can be appended to from one goroutine while another iterates and prunes.
package registry

import (
	"sync/atomic"

	"github.com/tomz197/skyraid/internal/object"
)

// List is a copy-on-write slice. Writers build a new slice and publish it with
// a compare-and-swap; readers iterate whatever slice was current when they
// called Snapshot. A snapshot never changes after it is returned, so iteration
// cannot observe a torn write or yield an element twice.
type List[T comparable] struct {
	items atomic.Pointer[[]T]
}

// NewList creates an empty list.
func NewList[T comparable]() *List[T] {
	l := &List[T]{}
	empty := []T{}
	l.items.Store(&empty)
	return l
}

// load returns the current slice, treating an unset pointer as empty.
func (l *List[T]) load() *[]T {
	p := l.items.Load()
	if p == nil {
		empty := []T{}
		l.items.CompareAndSwap(nil, &empty)
		return l.items.Load()
	}
	return p
}

// Add appends v.
func (l *List[T]) Add(v T) {
	for {
		old := l.load()
		next := make([]T, len(*old), len(*old)+1)
		copy(next, *old)
		next = append(next, v)
		if l.items.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Remove deletes the first element equal to v and reports whether one was found.
func (l *List[T]) Remove(v T) bool {
	for {
		old := l.load()
		idx := -1
		for i, item := range *old {
			if item == v {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false
		}
		next := make([]T, 0, len(*old)-1)
		next = append(next, (*old)[:idx]...)
		next = append(next, (*old)[idx+1:]...)
		if l.items.CompareAndSwap(old, &next) {
			return true
		}
	}
}

// RemoveAll deletes every element for which drop returns true and returns how
// many were removed. drop may be called more than once per element if a
// concurrent writer forces a retry.
func (l *List[T]) RemoveAll(drop func(T) bool) int {
	for {
		old := l.load()
		next := make([]T, 0, len(*old))
		for _, item := range *old {
			if !drop(item) {
				next = append(next, item)
			}
		}
		removed := len(*old) - len(next)
		if removed == 0 {
			return 0
		}
		if l.items.CompareAndSwap(old, &next) {
			return removed
		}
	}
}

// Snapshot returns the current contents in insertion order.
// The returned slice must not be modified.
func (l *List[T]) Snapshot() []T {
	return *l.load()
}

// Each calls fn for every element of the current snapshot in insertion order
// until fn returns false.
func (l *List[T]) Each(fn func(T) bool) {
	for _, item := range *l.load() {
		if !fn(item) {
			return
		}
	}
}

// Len returns the current number of elements.
func (l *List[T]) Len() int {
	return len(*l.load())
}

// Clear removes every element.
func (l *List[T]) Clear() {
	empty := []T{}
	l.items.Store(&empty)
}

// Registry groups the live bullets, enemies and explosions of one session.
type Registry struct {
	Bullets    *List[*object.Bullet]
	Enemies    *List[*object.Enemy]
	Explosions *List[*object.Explosion]
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		Bullets:    NewList[*object.Bullet](),
		Enemies:    NewList[*object.Enemy](),
		Explosions: NewList[*object.Explosion](),
	}
}

// Clear empties every collection.
func (r *Registry) Clear() {
	r.Bullets.Clear()
	r.Enemies.Clear()
	r.Explosions.Clear()
}

// Empty reports whether every collection is empty.
func (r *Registry) Empty() bool {
	return r.Bullets.Len() == 0 && r.Enemies.Len() == 0 && r.Explosions.Len() == 0
}
