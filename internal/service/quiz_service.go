package service

import (
	"errors"
	"sync"

	"buba/internal/models"
)

// quizAdvanceDelayMs is how long the client shows feedback before
// moving to the next question.
const quizAdvanceDelayMs = 1500

// ErrUnknownQuizType is returned when a quiz type is not in the catalog
var ErrUnknownQuizType = errors.New("unknown quiz type")

// QuizType describes one quiz in the catalog
type QuizType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// QuizTypes is the fixed quiz catalog
var QuizTypes = []QuizType{
	{ID: "names", Name: "Nomes", Description: "Identifique objetos, cores, formas e animais", Icon: "🎯"},
	{ID: "letters", Name: "Letra Inicial", Description: "Descubra a primeira letra das palavras", Icon: "🔤"},
	{ID: "quantities", Name: "Quantidades", Description: "Conte os objetos e formas", Icon: "🔢"},
}

var quizBanks = map[string][]models.QuizQuestion{
	"names": {
		{Question: "Que animal é este? 🐶", Options: []string{"Gato", "Cachorro", "Pássaro", "Peixe"}, CorrectAnswer: "Cachorro"},
		{Question: "Que cor é esta? 🔴", Options: []string{"Azul", "Verde", "Vermelho", "Amarelo"}, CorrectAnswer: "Vermelho"},
		{Question: "Que forma é esta? ⭐", Options: []string{"Círculo", "Quadrado", "Triângulo", "Estrela"}, CorrectAnswer: "Estrela"},
		{Question: "Que objeto é este? 🚗", Options: []string{"Bicicleta", "Carro", "Avião", "Barco"}, CorrectAnswer: "Carro"},
		{Question: "Que animal é este? 🐱", Options: []string{"Cachorro", "Coelho", "Gato", "Rato"}, CorrectAnswer: "Gato"},
		{Question: "Que cor é esta? 🔵", Options: []string{"Azul", "Verde", "Vermelho", "Rosa"}, CorrectAnswer: "Azul"},
		{Question: "Que animal é este? 🐘", Options: []string{"Rinoceronte", "Hipopótamo", "Elefante", "Girafa"}, CorrectAnswer: "Elefante"},
		{Question: "Que objeto é este? ✈️", Options: []string{"Helicóptero", "Avião", "Foguete", "Balão"}, CorrectAnswer: "Avião"},
		{Question: "Que fruta é esta? 🍎", Options: []string{"Laranja", "Banana", "Maçã", "Uva"}, CorrectAnswer: "Maçã"},
		{Question: "Que forma é esta? ⚫", Options: []string{"Círculo", "Quadrado", "Triângulo", "Retângulo"}, CorrectAnswer: "Círculo"},
	},
	"letters": {
		{Question: "Com que letra começa CACHORRO?", Options: []string{"B", "C", "D", "A"}, CorrectAnswer: "C"},
		{Question: "Com que letra começa VERMELHO?", Options: []string{"V", "B", "A", "M"}, CorrectAnswer: "V"},
		{Question: "Com que letra começa QUADRADO?", Options: []string{"C", "K", "Q", "P"}, CorrectAnswer: "Q"},
		{Question: "Com que letra começa ELEFANTE?", Options: []string{"A", "E", "I", "L"}, CorrectAnswer: "E"},
		{Question: "Com que letra começa BOLA?", Options: []string{"P", "D", "B", "V"}, CorrectAnswer: "B"},
		{Question: "Com que letra começa AVIÃO?", Options: []string{"A", "E", "I", "O"}, CorrectAnswer: "A"},
		{Question: "Com que letra começa MACACO?", Options: []string{"N", "M", "L", "P"}, CorrectAnswer: "M"},
		{Question: "Com que letra começa TARTARUGA?", Options: []string{"T", "D", "R", "S"}, CorrectAnswer: "T"},
		{Question: "Com que letra começa SAPATO?", Options: []string{"C", "S", "Z", "X"}, CorrectAnswer: "S"},
		{Question: "Com que letra começa JANELA?", Options: []string{"G", "J", "Z", "X"}, CorrectAnswer: "J"},
	},
	"quantities": {
		{Question: "Quantas estrelas? ⭐⭐⭐", Options: []string{"2", "3", "4", "5"}, CorrectAnswer: "3"},
		{Question: "Quantos corações? ❤️❤️❤️❤️❤️", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "5"},
		{Question: "Quantos círculos? 🔵🔵", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: "2"},
		{Question: "Quantas flores? 🌸🌸🌸🌸", Options: []string{"2", "3", "4", "5"}, CorrectAnswer: "4"},
		{Question: "Quantas árvores? 🌲", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: "1"},
		{Question: "Quantas nuvens? ☁️☁️☁️☁️☁️☁️", Options: []string{"5", "6", "7", "8"}, CorrectAnswer: "6"},
		{Question: "Quantos sóis? ☀️☀️☀️", Options: []string{"2", "3", "4", "5"}, CorrectAnswer: "3"},
		{Question: "Quantas luas? 🌙🌙🌙🌙🌙🌙🌙", Options: []string{"6", "7", "8", "9"}, CorrectAnswer: "7"},
		{Question: "Quantas maçãs? 🍎🍎🍎🍎🍎🍎🍎🍎", Options: []string{"7", "8", "9", "10"}, CorrectAnswer: "8"},
		{Question: "Quantas borboletas? 🦋🦋🦋🦋🦋🦋🦋🦋🦋", Options: []string{"8", "9", "10", "11"}, CorrectAnswer: "9"},
	},
}

// QuizResult is the outcome of answering one question
type QuizResult struct {
	Correct        bool                 `json:"correct"`
	CorrectAnswer  string               `json:"correct_answer"`
	Round          int                  `json:"round"`
	Total          int                  `json:"total"`
	Score          int                  `json:"score"`
	AdvanceDelayMs int                  `json:"advance_delay_ms"`
	Next           *models.QuizQuestion `json:"next,omitempty"`
	Summary        *models.DrillSummary `json:"summary,omitempty"`
}

type quizRun struct {
	quizType    string
	index       int
	score       int
	starsEarned int
}

// QuizService runs the pre-authored multiple-choice quizzes. Questions
// are served in bank order; correct answers award stars immediately.
type QuizService struct {
	rewards *RewardService
	mu      sync.Mutex
	runs    map[int64]*quizRun
}

// NewQuizService creates a quiz service
func NewQuizService(rewards *RewardService) *QuizService {
	return &QuizService{
		rewards: rewards,
		runs:    make(map[int64]*quizRun),
	}
}

// Start begins the named quiz for the apprentice and returns the first
// question plus the question count.
func (s *QuizService) Start(apprenticeID int64, quizType string) (*models.QuizQuestion, int, error) {
	bank, ok := quizBanks[quizType]
	if !ok {
		return nil, 0, ErrUnknownQuizType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[apprenticeID] = &quizRun{quizType: quizType}
	q := bank[0]
	return &q, len(bank), nil
}

// Answer grades the current question. Star awards persist before the
// quiz advances; on persistence failure the question stays open.
func (s *QuizService) Answer(apprenticeID int64, answer string) (*QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[apprenticeID]
	if !ok {
		return nil, ErrNoActiveGame
	}
	bank := quizBanks[run.quizType]
	current := bank[run.index]

	correct := answer == current.CorrectAnswer
	if correct {
		if _, err := s.rewards.AddStars(apprenticeID, starsPerCorrectDrill); err != nil {
			return nil, err
		}
		run.score++
		run.starsEarned += starsPerCorrectDrill
	}

	result := &QuizResult{
		Correct:        correct,
		CorrectAnswer:  current.CorrectAnswer,
		Round:          run.index + 1,
		Total:          len(bank),
		Score:          run.score,
		AdvanceDelayMs: quizAdvanceDelayMs,
	}

	if run.index+1 >= len(bank) {
		result.Summary = &models.DrillSummary{
			Score:       run.score,
			Total:       len(bank),
			Percentage:  percentage(run.score, len(bank)),
			StarsEarned: run.starsEarned,
		}
		delete(s.runs, apprenticeID)
		return result, nil
	}

	run.index++
	next := bank[run.index]
	result.Next = &next
	return result, nil
}
