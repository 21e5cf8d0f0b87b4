package session

import (
	"testing"
	"time"

	"github.com/tomz197/skyraid/internal/loop/config"
)

func TestSpawnIntervalCurve(t *testing.T) {
	d := NewDifficulty(config.Default())
	floor := config.SpawnFloorInterval

	prev := d.SpawnInterval(1)
	if prev != 1200*time.Millisecond {
		t.Fatalf("level 1 interval = %v", prev)
	}
	for level := 1; level <= 50; level++ {
		got := d.SpawnInterval(level)
		want := max(floor, 1200*time.Millisecond-150*time.Millisecond*time.Duration(level-1))
		if got != want {
			t.Fatalf("level %d: interval %v, want %v", level, got, want)
		}
		if got > prev {
			t.Fatalf("level %d: interval rose from %v to %v", level, prev, got)
		}
		if got < floor {
			t.Fatalf("level %d: interval %v below floor", level, got)
		}
		prev = got
	}
	if got := d.SpawnInterval(1 << 40); got != floor {
		t.Fatalf("huge level interval = %v, want floor", got)
	}
}

func TestLevelForScore(t *testing.T) {
	d := NewDifficulty(config.Default())
	tests := []struct{ score, level int }{
		{0, 1}, {90, 1}, {99, 1}, {100, 2}, {110, 2}, {250, 3}, {1000, 11},
	}
	for _, tt := range tests {
		if got := d.Level(tt.score); got != tt.level {
			t.Errorf("Level(%d) = %d, want %d", tt.score, got, tt.level)
		}
	}
}

func TestOnKill(t *testing.T) {
	d := NewDifficulty(config.Default())

	level, interval, up := d.OnKill(90, 1)
	if up || level != 1 || interval != 1200*time.Millisecond {
		t.Fatalf("OnKill(90) = %d, %v, %v", level, interval, up)
	}
	level, interval, up = d.OnKill(100, 1)
	if !up || level != 2 || interval != 1050*time.Millisecond {
		t.Fatalf("OnKill(100) = %d, %v, %v", level, interval, up)
	}
	if _, _, up = d.OnKill(110, 2); up {
		t.Fatalf("OnKill(110) leveled up again")
	}
}

func TestEnemyStatsCap(t *testing.T) {
	d := NewDifficulty(config.Default())
	if d.EnemyHP(1) != 3 || d.EnemyHP(2) != 4 || d.EnemyHP(100) != 6 {
		t.Fatalf("EnemyHP = %d %d %d", d.EnemyHP(1), d.EnemyHP(2), d.EnemyHP(100))
	}
	if d.EnemySpeed(1, 0) != 1 || d.EnemySpeed(1, 1) != 2 || d.EnemySpeed(100, 1) != 6 {
		t.Fatalf("EnemySpeed = %v %v %v", d.EnemySpeed(1, 0), d.EnemySpeed(1, 1), d.EnemySpeed(100, 1))
	}
}
