package service

import (
	"errors"
	"testing"
)

func TestQuizBanksAreComplete(t *testing.T) {
	if len(QuizTypes) != 3 {
		t.Fatalf("quiz catalog has %d entries, want 3", len(QuizTypes))
	}
	for _, qt := range QuizTypes {
		bank, ok := quizBanks[qt.ID]
		if !ok {
			t.Errorf("quiz type %q has no bank", qt.ID)
			continue
		}
		if len(bank) != 10 {
			t.Errorf("bank %q has %d questions, want 10", qt.ID, len(bank))
		}
		for i, q := range bank {
			if len(q.Options) != 4 {
				t.Errorf("bank %q question %d has %d options, want 4", qt.ID, i, len(q.Options))
			}
			found := false
			for _, opt := range q.Options {
				if opt == q.CorrectAnswer {
					found = true
				}
			}
			if !found {
				t.Errorf("bank %q question %d answer %q not among options", qt.ID, i, q.CorrectAnswer)
			}
		}
	}
}

func TestQuizStartUnknownType(t *testing.T) {
	svc := NewQuizService(NewRewardService(newFakeStarStore()))
	if _, _, err := svc.Start(1, "history"); !errors.Is(err, ErrUnknownQuizType) {
		t.Errorf("error = %v, want ErrUnknownQuizType", err)
	}
}

func TestQuizFullRunAllCorrect(t *testing.T) {
	store := newFakeStarStore()
	svc := NewQuizService(NewRewardService(store))

	q, total, err := svc.Start(1, "letters")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if total != 10 {
		t.Fatalf("total = %d, want 10", total)
	}

	bank := quizBanks["letters"]
	if q.Question != bank[0].Question {
		t.Errorf("first question = %q, want %q", q.Question, bank[0].Question)
	}

	var last *QuizResult
	for i := 0; i < 10; i++ {
		result, err := svc.Answer(1, bank[i].CorrectAnswer)
		if err != nil {
			t.Fatalf("Answer %d: %v", i+1, err)
		}
		if !result.Correct {
			t.Fatalf("answer %d graded wrong", i+1)
		}
		if result.AdvanceDelayMs != 1500 {
			t.Fatalf("advance delay = %d, want 1500", result.AdvanceDelayMs)
		}
		last = result
	}

	if last.Summary == nil {
		t.Fatal("final answer missing summary")
	}
	if last.Summary.Score != 10 || last.Summary.Percentage != 100 {
		t.Errorf("summary = %d/%d%%, want 10/100%%", last.Summary.Score, last.Summary.Percentage)
	}
	if store.stars[1] != 100 {
		t.Errorf("persisted stars = %d, want 100", store.stars[1])
	}
}

func TestQuizWrongAnswerAwardsNothing(t *testing.T) {
	store := newFakeStarStore()
	svc := NewQuizService(NewRewardService(store))

	if _, _, err := svc.Start(1, "names"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	result, err := svc.Answer(1, "definitely wrong")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if result.Correct {
		t.Error("wrong answer graded correct")
	}
	if result.CorrectAnswer != quizBanks["names"][0].CorrectAnswer {
		t.Errorf("correct answer = %q, want %q", result.CorrectAnswer, quizBanks["names"][0].CorrectAnswer)
	}
	if store.stars[1] != 0 {
		t.Errorf("persisted stars = %d, want 0", store.stars[1])
	}
	if store.addCalls != 0 {
		t.Errorf("store received %d award calls, want 0", store.addCalls)
	}
}

func TestQuizAwardFailureKeepsQuestionOpen(t *testing.T) {
	store := newFakeStarStore()
	svc := NewQuizService(NewRewardService(store))

	if _, _, err := svc.Start(1, "quantities"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	store.failAdd = errors.New("db down")
	if _, err := svc.Answer(1, quizBanks["quantities"][0].CorrectAnswer); err == nil {
		t.Fatal("expected error when award fails")
	}

	store.failAdd = nil
	result, err := svc.Answer(1, quizBanks["quantities"][0].CorrectAnswer)
	if err != nil {
		t.Fatalf("retry Answer: %v", err)
	}
	if result.Round != 1 {
		t.Errorf("round = %d, want 1 (question should not have advanced)", result.Round)
	}
	if store.stars[1] != 10 {
		t.Errorf("persisted stars = %d, want 10", store.stars[1])
	}
}

func TestQuizAnswerWithoutGame(t *testing.T) {
	svc := NewQuizService(NewRewardService(newFakeStarStore()))
	if _, err := svc.Answer(7, "A"); !errors.Is(err, ErrNoActiveGame) {
		t.Errorf("error = %v, want ErrNoActiveGame", err)
	}
}
