package panel

import (
	"sync"
	"testing"
)

func TestFanLevelFor(t *testing.T) {
	tests := []struct {
		tempC int
		want  int
	}{
		{tempC: 20, want: 0},
		{tempC: 24, want: 0},
		{tempC: 25, want: 1},
		{tempC: 29, want: 1},
		{tempC: 30, want: 2},
		{tempC: 34, want: 2},
		{tempC: 35, want: 3},
		{tempC: 40, want: 3},
	}

	for _, tt := range tests {
		if got := FanLevelFor(tt.tempC); got != tt.want {
			t.Errorf("FanLevelFor(%d) = %d, want %d", tt.tempC, got, tt.want)
		}
	}
}

func TestLampLevelFor(t *testing.T) {
	tests := []struct {
		light int
		want  int
	}{
		{light: 10, want: 0},
		{light: 24, want: 0},
		{light: 25, want: 1},
		{light: 49, want: 1},
		{light: 50, want: 2},
		{light: 74, want: 2},
		{light: 75, want: 3},
		{light: 90, want: 3},
	}

	for _, tt := range tests {
		if got := LampLevelFor(tt.light); got != tt.want {
			t.Errorf("LampLevelFor(%d) = %d, want %d", tt.light, got, tt.want)
		}
	}
}

func TestBoardUpdateSnapshot(t *testing.T) {
	b := NewBoard()

	b.Update(func(s *State) {
		s.FanLevel = 2
		s.Alert = true
	})

	got := b.Snapshot()
	if got.FanLevel != 2 || !got.Alert {
		t.Errorf("Snapshot() = %+v, want FanLevel=2 Alert=true", got)
	}

	// Snapshot is a copy; mutating it does not touch the board.
	got.FanLevel = 9
	if b.Snapshot().FanLevel != 2 {
		t.Error("mutating a snapshot leaked into the board")
	}
}

func TestBoardConcurrentUpdates(t *testing.T) {
	b := NewBoard()
	const iterations = 100

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			b.Update(func(s *State) { s.FanLevel = i % 4 })
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			s := b.Snapshot()
			if s.FanLevel < 0 || s.FanLevel > 3 {
				t.Errorf("snapshot observed out-of-range fan level %d", s.FanLevel)
				return
			}
		}
	}()
	wg.Wait()
}
