package registry

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tomz197/skyraid/internal/object"
)

func TestListAddRemoveOrder(t *testing.T) {
	l := NewList[int]()
	for i := 1; i <= 5; i++ {
		l.Add(i)
	}
	if !l.Remove(3) {
		t.Fatalf("Remove(3) = false")
	}
	if l.Remove(42) {
		t.Fatalf("Remove(42) = true for a missing element")
	}
	got := l.Snapshot()
	want := []int{1, 2, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Snapshot = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Snapshot = %v, want %v", got, want)
		}
	}
}

func TestSnapshotIsStable(t *testing.T) {
	l := NewList[int]()
	l.Add(1)
	l.Add(2)
	snap := l.Snapshot()

	l.Add(3)
	l.Remove(1)
	l.Clear()

	if len(snap) != 2 || snap[0] != 1 || snap[1] != 2 {
		t.Fatalf("snapshot changed after writes: %v", snap)
	}
	if l.Len() != 0 {
		t.Fatalf("Len after Clear = %d", l.Len())
	}
}

func TestRemoveAll(t *testing.T) {
	l := NewList[int]()
	for i := 0; i < 10; i++ {
		l.Add(i)
	}
	n := l.RemoveAll(func(v int) bool { return v%2 == 0 })
	if n != 5 || l.Len() != 5 {
		t.Fatalf("RemoveAll removed %d, Len = %d", n, l.Len())
	}
	if l.RemoveAll(func(int) bool { return false }) != 0 {
		t.Fatalf("RemoveAll with no match removed elements")
	}
}

func TestZeroValueList(t *testing.T) {
	var l List[string]
	if l.Len() != 0 {
		t.Fatalf("zero List Len = %d", l.Len())
	}
	l.Add("a")
	if got := l.Snapshot(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("zero List Snapshot = %v", got)
	}
}

// TestConcurrentAppendWhilePruning interleaves 1000 appends from a spawner-like
// and a shooter-like writer with a tick-like reader that iterates and prunes.
func TestConcurrentAppendWhilePruning(t *testing.T) {
	const perWriter = 500

	l := NewList[*object.Bullet]()
	var appended, removed atomic.Int64
	var writers sync.WaitGroup
	done := make(chan struct{})

	for w := 0; w < 2; w++ {
		writers.Add(1)
		go func() {
			defer writers.Done()
			for i := 0; i < perWriter; i++ {
				l.Add(object.NewBullet(float64(i), 0, 10, 1))
				appended.Add(1)
			}
		}()
	}

	var pruner sync.WaitGroup
	pruner.Add(1)
	go func() {
		defer pruner.Done()
		pass := 0
		for {
			select {
			case <-done:
				return
			default:
			}
			seen := make(map[*object.Bullet]bool)
			for i, b := range l.Snapshot() {
				if seen[b] {
					t.Errorf("pass %d yielded the same bullet twice", pass)
					return
				}
				seen[b] = true
				if i%2 == 0 && l.Remove(b) {
					removed.Add(1)
				}
			}
			pass++
		}
	}()

	writers.Wait()
	close(done)
	pruner.Wait()

	if appended.Load() != 2*perWriter {
		t.Fatalf("appended = %d", appended.Load())
	}
	if got, want := int64(l.Len()), appended.Load()-removed.Load(); got != want {
		t.Fatalf("Len = %d, want appended-removed = %d", got, want)
	}
}

func TestRegistryClear(t *testing.T) {
	r := New()
	r.Bullets.Add(object.NewBullet(0, 0, 10, 1))
	r.Enemies.Add(object.NewEnemy(0, 0, 3, 1))
	r.Explosions.Add(object.NewExplosion(0, 0, 12))
	if r.Empty() {
		t.Fatalf("registry reported empty")
	}
	r.Clear()
	if !r.Empty() {
		t.Fatalf("registry not empty after Clear")
	}
}

func TestEachStopsEarly(t *testing.T) {
	l := NewList[int]()
	for i := 1; i <= 5; i++ {
		l.Add(i)
	}
	var seen []int
	l.Each(func(v int) bool {
		seen = append(seen, v)
		l.Remove(v) // Removal does not disturb the walk in progress.
		return v < 3
	})
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Fatalf("Each visited %v, want [1 2 3]", seen)
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
}
