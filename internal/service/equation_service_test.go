package service

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestEquationService(store *fakeStarStore) *EquationService {
	return NewEquationService(NewRewardService(store), rand.New(rand.NewSource(42)))
}

func TestGenerateEquationBounds(t *testing.T) {
	svc := newTestEquationService(newFakeStarStore())

	for i := 0; i < 500; i++ {
		eq := svc.generate()
		switch eq.Operation {
		case "+":
			if eq.Num1 < 1 || eq.Num1 > 20 {
				t.Fatalf("addition num1 = %d, want 1..20", eq.Num1)
			}
			if eq.Num2 < 1 || eq.Num2 > 20 {
				t.Fatalf("addition num2 = %d, want 1..20", eq.Num2)
			}
			if eq.Answer != eq.Num1+eq.Num2 {
				t.Fatalf("addition answer = %d, want %d", eq.Answer, eq.Num1+eq.Num2)
			}
		case "-":
			if eq.Num1 < 10 || eq.Num1 > 29 {
				t.Fatalf("subtraction num1 = %d, want 10..29", eq.Num1)
			}
			if eq.Num2 < 1 || eq.Num2 > eq.Num1 {
				t.Fatalf("subtraction num2 = %d, want 1..%d", eq.Num2, eq.Num1)
			}
			if eq.Answer != eq.Num1-eq.Num2 {
				t.Fatalf("subtraction answer = %d, want %d", eq.Answer, eq.Num1-eq.Num2)
			}
			if eq.Answer < 0 {
				t.Fatalf("subtraction answer %d is negative", eq.Answer)
			}
		default:
			t.Fatalf("unexpected operation %q", eq.Operation)
		}
	}
}

func TestEquationDrillFullRun(t *testing.T) {
	store := newFakeStarStore()
	svc := newTestEquationService(store)

	eq, round, total := svc.Start(1)
	if round != 1 || total != 10 {
		t.Fatalf("Start round/total = %d/%d, want 1/10", round, total)
	}

	var summary *EquationResult
	current := eq
	for i := 0; i < 10; i++ {
		// answer correctly on even rounds, wrong on odd
		answer := current.Answer
		if i%2 == 1 {
			answer = current.Answer + 1
		}
		result, err := svc.Submit(1, answer)
		if err != nil {
			t.Fatalf("Submit round %d: %v", i+1, err)
		}
		if i < 9 {
			if result.Next == nil {
				t.Fatalf("round %d missing next equation", i+1)
			}
			current = result.Next
		} else {
			summary = result
		}
	}

	if summary.Summary == nil {
		t.Fatal("final round missing summary")
	}
	if summary.Summary.Score != 5 {
		t.Errorf("score = %d, want 5", summary.Summary.Score)
	}
	if summary.Summary.Percentage != 50 {
		t.Errorf("percentage = %d, want 50", summary.Summary.Percentage)
	}
	if summary.Summary.StarsEarned != 50 {
		t.Errorf("stars earned = %d, want 50", summary.Summary.StarsEarned)
	}
	if store.stars[1] != 50 {
		t.Errorf("persisted stars = %d, want 50", store.stars[1])
	}

	// drill is finished, further submissions need a new Start
	if _, err := svc.Submit(1, 1); !errors.Is(err, ErrNoActiveGame) {
		t.Errorf("Submit after finish error = %v, want ErrNoActiveGame", err)
	}
}

func TestEquationAwardFailureKeepsRoundOpen(t *testing.T) {
	store := newFakeStarStore()
	svc := newTestEquationService(store)

	eq, _, _ := svc.Start(1)
	store.failAdd = errors.New("db down")

	if _, err := svc.Submit(1, eq.Answer); err == nil {
		t.Fatal("expected error when award fails")
	}

	store.failAdd = nil
	result, err := svc.Submit(1, eq.Answer)
	if err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if !result.Correct {
		t.Error("retried answer should still be graded correct")
	}
	if result.Round != 1 {
		t.Errorf("round = %d, want 1", result.Round)
	}
	if store.stars[1] != 10 {
		t.Errorf("persisted stars = %d, want 10", store.stars[1])
	}
}

func TestEquationSubmitWithoutGame(t *testing.T) {
	svc := newTestEquationService(newFakeStarStore())
	if _, err := svc.Submit(5, 1); !errors.Is(err, ErrNoActiveGame) {
		t.Errorf("error = %v, want ErrNoActiveGame", err)
	}
}

func TestPercentageRounding(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{0, 10, 0},
		{5, 10, 50},
		{10, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
	}
	for _, tt := range tests {
		if got := percentage(tt.score, tt.total); got != tt.want {
			t.Errorf("percentage(%d, %d) = %d, want %d", tt.score, tt.total, got, tt.want)
		}
	}
}
