package models

// Color is one of the four memory-game symbols
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
)

// Colors is the fixed memory-game alphabet
var Colors = []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow}

// Valid reports whether c is a member of the color alphabet
func (c Color) Valid() bool {
	switch c {
	case ColorRed, ColorBlue, ColorGreen, ColorYellow:
		return true
	}
	return false
}

// MemoryState is the state of a memory-game run presented to the client.
// The sequence is included so the client can play it back; per-symbol
// timing (pause then highlight) is fixed and driven client-side.
type MemoryState struct {
	Sequence       []Color `json:"sequence"`
	Level          int     `json:"level"`
	StarsEarned    int     `json:"stars_earned"`
	GameOver       bool    `json:"game_over"`
	PresentPauseMs int     `json:"present_pause_ms"`
	HighlightMs    int     `json:"highlight_ms"`
}

// MemoryStepResult is the outcome of a single color input
type MemoryStepResult struct {
	Status       string  `json:"status"` // "ok", "round_complete", "game_over"
	Level        int     `json:"level"`
	StarsAwarded int     `json:"stars_awarded,omitempty"`
	StarsEarned  int     `json:"stars_earned"`
	NewRecord    bool    `json:"new_record,omitempty"`
	Sequence     []Color `json:"sequence,omitempty"`
}

// Equation is a single generated arithmetic problem
type Equation struct {
	Num1      int    `json:"num1"`
	Num2      int    `json:"num2"`
	Operation string `json:"operation"` // "+" or "-"
	Answer    int    `json:"-"`
}

// QuizQuestion is a pre-authored multiple-choice question
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"-"`
}

// DrillSummary is shown after the final round of a drill session
type DrillSummary struct {
	Score       int `json:"score"`
	Total       int `json:"total"`
	Percentage  int `json:"percentage"`
	StarsEarned int `json:"stars_earned"`
}
