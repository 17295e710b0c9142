package service

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"buba/internal/models"
)

func TestStarsForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 10}, {2, 10}, {3, 10},
		{4, 20}, {5, 20}, {6, 20},
		{7, 40}, {8, 40}, {9, 40},
		{10, 80}, {11, 80}, {12, 80},
		{13, 160},
	}
	for _, tt := range tests {
		if got := StarsForLevel(tt.level); got != tt.want {
			t.Errorf("StarsForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
	if got := StarsForLevel(0); got != 0 {
		t.Errorf("StarsForLevel(0) = %d, want 0", got)
	}
}

func newTestMemoryService(store *fakeStarStore) *MemoryService {
	return NewMemoryService(NewRewardService(store), rand.New(rand.NewSource(1)))
}

// replaySequence feeds the whole current sequence back correctly
func replaySequence(t *testing.T, svc *MemoryService, apprenticeID int64) {
	t.Helper()
	state, err := svc.State(apprenticeID)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	for i, color := range state.Sequence {
		result, err := svc.Input(apprenticeID, color)
		if err != nil {
			t.Fatalf("Input %d: %v", i, err)
		}
		if i < len(state.Sequence)-1 && result.Status != "ok" {
			t.Fatalf("input %d status = %q, want ok", i, result.Status)
		}
		if i == len(state.Sequence)-1 && result.Status != "round_complete" {
			t.Fatalf("final input status = %q, want round_complete", result.Status)
		}
	}
}

func TestMemoryStartState(t *testing.T) {
	svc := newTestMemoryService(newFakeStarStore())
	state := svc.Start(1)

	if len(state.Sequence) != 1 {
		t.Errorf("initial sequence length = %d, want 1", len(state.Sequence))
	}
	if state.Level != 0 {
		t.Errorf("initial level = %d, want 0", state.Level)
	}
	if state.PresentPauseMs != 500 || state.HighlightMs != 600 {
		t.Errorf("timings = %d/%d, want 500/600", state.PresentPauseMs, state.HighlightMs)
	}
}

func TestMemoryRoundCompletionAwardsAndGrows(t *testing.T) {
	store := newFakeStarStore()
	svc := newTestMemoryService(store)
	svc.Start(1)

	replaySequence(t, svc, 1)

	state, err := svc.State(1)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.Level != 1 {
		t.Errorf("level = %d, want 1", state.Level)
	}
	if len(state.Sequence) != 2 {
		t.Errorf("sequence length = %d, want 2", len(state.Sequence))
	}
	if state.StarsEarned != 10 {
		t.Errorf("stars earned = %d, want 10", state.StarsEarned)
	}
	if store.stars[1] != 10 {
		t.Errorf("persisted stars = %d, want 10", store.stars[1])
	}
}

func TestMemoryTierDoublingAcrossLevels(t *testing.T) {
	store := newFakeStarStore()
	svc := newTestMemoryService(store)
	svc.Start(1)

	// levels 1-3 pay 10 each, level 4 pays 20
	for i := 0; i < 4; i++ {
		replaySequence(t, svc, 1)
	}

	state, err := svc.State(1)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.StarsEarned != 50 {
		t.Errorf("stars earned after level 4 = %d, want 50", state.StarsEarned)
	}
}

func TestMemoryWrongInputEndsGameAndSubmitsRecord(t *testing.T) {
	store := newFakeStarStore()
	svc := newTestMemoryService(store)
	svc.Start(1)

	replaySequence(t, svc, 1)
	replaySequence(t, svc, 1)

	state, _ := svc.State(1)
	wrong := wrongColorFor(state.Sequence[0])

	result, err := svc.Input(1, wrong)
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if result.Status != "game_over" {
		t.Fatalf("status = %q, want game_over", result.Status)
	}
	if result.Level != 2 {
		t.Errorf("final level = %d, want 2", result.Level)
	}
	if !result.NewRecord {
		t.Error("level 2 over empty record should be a new record")
	}
	if store.records[1] != 2 {
		t.Errorf("persisted record = %d, want 2", store.records[1])
	}

	if _, err := svc.Input(1, state.Sequence[0]); !errors.Is(err, ErrGameOver) {
		t.Errorf("input after game over error = %v, want ErrGameOver", err)
	}
}

func TestMemoryGameOverBelowRecordIsNotNewRecord(t *testing.T) {
	store := newFakeStarStore()
	store.records[1] = 5
	svc := newTestMemoryService(store)
	svc.Start(1)

	replaySequence(t, svc, 1)

	state, _ := svc.State(1)
	result, err := svc.Input(1, wrongColorFor(state.Sequence[0]))
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if result.NewRecord {
		t.Error("level 1 should not beat record 5")
	}
	if store.records[1] != 5 {
		t.Errorf("record = %d, want 5 unchanged", store.records[1])
	}
}

func TestMemoryAwardFailureLeavesRunRetryable(t *testing.T) {
	store := newFakeStarStore()
	svc := newTestMemoryService(store)
	svc.Start(1)

	state, _ := svc.State(1)
	store.failAdd = errors.New("db down")

	if _, err := svc.Input(1, state.Sequence[0]); err == nil {
		t.Fatal("expected error when award fails")
	}

	after, _ := svc.State(1)
	if after.Level != 0 || after.GameOver {
		t.Error("run should be unchanged after failed award")
	}

	// retry succeeds once the store recovers
	store.failAdd = nil
	result, err := svc.Input(1, state.Sequence[0])
	if err != nil {
		t.Fatalf("retry Input: %v", err)
	}
	if result.Status != "round_complete" {
		t.Errorf("retry status = %q, want round_complete", result.Status)
	}
	if store.stars[1] != 10 {
		t.Errorf("persisted stars = %d, want 10", store.stars[1])
	}
}

func TestMemoryInputWithoutGame(t *testing.T) {
	svc := newTestMemoryService(newFakeStarStore())
	if _, err := svc.Input(99, "red"); !errors.Is(err, ErrNoActiveGame) {
		t.Errorf("error = %v, want ErrNoActiveGame", err)
	}
	if _, err := svc.State(99); !errors.Is(err, ErrNoActiveGame) {
		t.Errorf("State error = %v, want ErrNoActiveGame", err)
	}
}

func TestMemoryRejectsInvalidColor(t *testing.T) {
	svc := newTestMemoryService(newFakeStarStore())
	svc.Start(1)
	if _, err := svc.Input(1, "purple"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("error = %v, want ErrInvalidColor", err)
	}
}

// The memory and equation services each guard their own state with
// their own mutex, so they must not share a rand.Rand. Run under
// -race with the generators wired the way the server wires them.
func TestGameServicesUseIndependentGenerators(t *testing.T) {
	mem := NewMemoryService(NewRewardService(newFakeStarStore()), rand.New(rand.NewSource(time.Now().UnixNano())))
	eq := NewEquationService(NewRewardService(newFakeStarStore()), rand.New(rand.NewSource(time.Now().UnixNano()+1)))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		id := int64(i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			mem.Start(id)
		}()
		go func() {
			defer wg.Done()
			eq.Start(id)
		}()
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		if _, err := mem.State(int64(i)); err != nil {
			t.Errorf("memory run %d missing: %v", i, err)
		}
	}
}

func wrongColorFor(c models.Color) models.Color {
	if c == models.ColorRed {
		return models.ColorBlue
	}
	return models.ColorRed
}
