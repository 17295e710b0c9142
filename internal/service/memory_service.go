package service

import (
	"errors"
	"math/rand"
	"sync"

	"buba/internal/models"
)

// Memory game presentation timings, in milliseconds
const (
	memoryPresentPauseMs = 500
	memoryHighlightMs    = 600
)

// ErrNoActiveGame is returned when input arrives without a running game
var ErrNoActiveGame = errors.New("no active game")

// ErrGameOver is returned when input arrives after the game ended
var ErrGameOver = errors.New("game is over")

// ErrInvalidColor is returned for input outside the color alphabet
var ErrInvalidColor = errors.New("invalid color")

// StarsForLevel returns the stars awarded for completing a memory
// level. Levels are grouped in tiers of three; the award doubles each
// tier: levels 1-3 pay 10, 4-6 pay 20, 7-9 pay 40 and so on.
func StarsForLevel(level int) int {
	if level < 1 {
		return 0
	}
	return 10 << ((level - 1) / 3)
}

type memoryRun struct {
	sequence    []models.Color
	level       int // completed rounds
	pos         int // next index expected in the replay
	starsEarned int
	newRecord   bool
	gameOver    bool
}

// MemoryService runs the color-sequence memory game. One run per
// apprentice is held in memory; stars and records are persisted through
// the reward service as they are earned.
type MemoryService struct {
	rewards *RewardService
	rng     *rand.Rand
	mu      sync.Mutex
	runs    map[int64]*memoryRun
}

// NewMemoryService creates a memory game service
func NewMemoryService(rewards *RewardService, rng *rand.Rand) *MemoryService {
	return &MemoryService{
		rewards: rewards,
		rng:     rng,
		runs:    make(map[int64]*memoryRun),
	}
}

// Start begins a new run for the apprentice, replacing any previous
// one, and returns the first one-color sequence to present.
func (s *MemoryService) Start(apprenticeID int64) *models.MemoryState {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := &memoryRun{
		sequence: []models.Color{s.randomColor()},
	}
	s.runs[apprenticeID] = run
	return s.stateLocked(run)
}

// State returns the current run state, or ErrNoActiveGame
func (s *MemoryService) State(apprenticeID int64) (*models.MemoryState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[apprenticeID]
	if !ok {
		return nil, ErrNoActiveGame
	}
	return s.stateLocked(run), nil
}

// Input processes one color pressed by the apprentice.
//
// A wrong color ends the run: the completed level is submitted as a
// memory record candidate and the result reports whether it was a new
// record. Completing the sequence finishes the round: the level's star
// award is persisted first, and only then does the run advance and the
// sequence grow. If persisting fails the run is left unchanged so the
// input can be retried without losing stars.
func (s *MemoryService) Input(apprenticeID int64, color models.Color) (*models.MemoryStepResult, error) {
	if !color.Valid() {
		return nil, ErrInvalidColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[apprenticeID]
	if !ok {
		return nil, ErrNoActiveGame
	}
	if run.gameOver {
		return nil, ErrGameOver
	}

	if color != run.sequence[run.pos] {
		newRecord, err := s.rewards.RecordMemoryLevel(apprenticeID, run.level)
		if err != nil {
			return nil, err
		}
		run.gameOver = true
		run.newRecord = newRecord
		return &models.MemoryStepResult{
			Status:      "game_over",
			Level:       run.level,
			StarsEarned: run.starsEarned,
			NewRecord:   newRecord,
		}, nil
	}

	run.pos++
	if run.pos < len(run.sequence) {
		return &models.MemoryStepResult{
			Status:      "ok",
			Level:       run.level,
			StarsEarned: run.starsEarned,
		}, nil
	}

	completedLevel := run.level + 1
	award := StarsForLevel(completedLevel)
	if _, err := s.rewards.AddStars(apprenticeID, award); err != nil {
		run.pos-- // roll back so the final input can be retried
		return nil, err
	}

	run.level = completedLevel
	run.starsEarned += award
	run.pos = 0
	run.sequence = append(run.sequence, s.randomColor())

	return &models.MemoryStepResult{
		Status:       "round_complete",
		Level:        run.level,
		StarsAwarded: award,
		StarsEarned:  run.starsEarned,
		Sequence:     append([]models.Color(nil), run.sequence...),
	}, nil
}

func (s *MemoryService) randomColor() models.Color {
	return models.Colors[s.rng.Intn(len(models.Colors))]
}

func (s *MemoryService) stateLocked(run *memoryRun) *models.MemoryState {
	return &models.MemoryState{
		Sequence:       append([]models.Color(nil), run.sequence...),
		Level:          run.level,
		StarsEarned:    run.starsEarned,
		GameOver:       run.gameOver,
		PresentPauseMs: memoryPresentPauseMs,
		HighlightMs:    memoryHighlightMs,
	}
}
