package service

import (
	"math"
	"math/rand"
	"sync"

	"buba/internal/models"
)

const (
	equationRounds       = 10
	starsPerCorrectDrill = 10
)

// EquationResult is the outcome of an answer submission
type EquationResult struct {
	Correct       bool                 `json:"correct"`
	CorrectAnswer int                  `json:"correct_answer"`
	Round         int                  `json:"round"`
	Total         int                  `json:"total"`
	Score         int                  `json:"score"`
	Next          *models.Equation     `json:"next,omitempty"`
	Summary       *models.DrillSummary `json:"summary,omitempty"`
}

type equationRun struct {
	current     models.Equation
	round       int // 1-based round in play
	score       int
	starsEarned int
}

// EquationService runs ten-round arithmetic drills. Correct answers
// award stars immediately, so quitting mid-drill keeps what was earned.
type EquationService struct {
	rewards *RewardService
	rng     *rand.Rand
	mu      sync.Mutex
	runs    map[int64]*equationRun
}

// NewEquationService creates an equation drill service
func NewEquationService(rewards *RewardService, rng *rand.Rand) *EquationService {
	return &EquationService{
		rewards: rewards,
		rng:     rng,
		runs:    make(map[int64]*equationRun),
	}
}

// generate builds one random equation. Additions use operands from 1
// to 20; subtractions pick the first operand from 10 to 29 and the
// second from 1 up to it, so results are never negative.
func (s *EquationService) generate() models.Equation {
	if s.rng.Intn(2) == 0 {
		num1 := s.rng.Intn(20) + 1
		num2 := s.rng.Intn(20) + 1
		return models.Equation{Num1: num1, Num2: num2, Operation: "+", Answer: num1 + num2}
	}
	num1 := s.rng.Intn(20) + 10
	num2 := s.rng.Intn(num1) + 1
	return models.Equation{Num1: num1, Num2: num2, Operation: "-", Answer: num1 - num2}
}

// Start begins a new drill for the apprentice and returns the first equation
func (s *EquationService) Start(apprenticeID int64) (*models.Equation, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := &equationRun{current: s.generate(), round: 1}
	s.runs[apprenticeID] = run
	eq := run.current
	return &eq, run.round, equationRounds
}

// Submit grades an answer for the current round. A correct answer
// persists its star award before the drill advances; if the award
// fails the round stays open so the answer can be resubmitted.
func (s *EquationService) Submit(apprenticeID int64, answer int) (*EquationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[apprenticeID]
	if !ok {
		return nil, ErrNoActiveGame
	}

	correct := answer == run.current.Answer
	if correct {
		if _, err := s.rewards.AddStars(apprenticeID, starsPerCorrectDrill); err != nil {
			return nil, err
		}
		run.score++
		run.starsEarned += starsPerCorrectDrill
	}

	result := &EquationResult{
		Correct:       correct,
		CorrectAnswer: run.current.Answer,
		Round:         run.round,
		Total:         equationRounds,
		Score:         run.score,
	}

	if run.round >= equationRounds {
		result.Summary = &models.DrillSummary{
			Score:       run.score,
			Total:       equationRounds,
			Percentage:  percentage(run.score, equationRounds),
			StarsEarned: run.starsEarned,
		}
		delete(s.runs, apprenticeID)
		return result, nil
	}

	run.round++
	run.current = s.generate()
	next := run.current
	result.Next = &next
	return result, nil
}

func percentage(score, total int) int {
	return int(math.Round(float64(score) / float64(total) * 100))
}
