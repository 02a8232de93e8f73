package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Difficulty controls both the points awarded per correct answer and how
// strictly answers are graded.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	// DifficultyAll tags catalog scenarios playable at every level. It is
	// never a valid session difficulty.
	DifficultyAll Difficulty = "all"
)

// Playable reports whether d is a difficulty a session can be started with.
func (d Difficulty) Playable() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// InteractionType is the input modality of a scenario; it selects both the
// client widget and the grading strategy.
type InteractionType string

const (
	InteractionMultipleChoice    InteractionType = "multiple-choice"
	InteractionCategorySelection InteractionType = "category-selection"
	InteractionSlider            InteractionType = "slider"
	InteractionChat              InteractionType = "chat"
	InteractionSequenceOrdering  InteractionType = "sequence-ordering"
	InteractionHotspot           InteractionType = "hotspot"
)

// Known reports whether t is one of the supported interaction types.
func (t InteractionType) Known() bool {
	switch t {
	case InteractionMultipleChoice, InteractionCategorySelection, InteractionSlider,
		InteractionChat, InteractionSequenceOrdering, InteractionHotspot:
		return true
	}
	return false
}

// Phase is the lifecycle state of a game session.
type Phase string

const (
	PhaseIntro   Phase = "intro"
	PhasePlaying Phase = "playing"
	PhaseResults Phase = "results"
)

// AnswerKey is the canonical correct answer for a scenario. Exactly one
// field is set; which one depends on the scenario's interaction type:
// Number for multiple-choice, slider and hotspot; IDs for sequence-ordering
// and legacy chat keywords; Categories for category-selection.
//
// On the wire it is a bare JSON number, array of strings, or object of
// string arrays, matching the catalog authoring format.
type AnswerKey struct {
	Number     *float64
	IDs        []string
	Categories map[string][]string
}

func (k *AnswerKey) UnmarshalJSON(data []byte) error {
	*k = AnswerKey{}
	if string(data) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		k.Number = &n
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err == nil {
		k.IDs = ids
		return nil
	}
	var cats map[string][]string
	if err := json.Unmarshal(data, &cats); err == nil {
		k.Categories = cats
		return nil
	}
	return fmt.Errorf("answer key: unsupported shape %s", data)
}

func (k AnswerKey) MarshalJSON() ([]byte, error) {
	switch {
	case k.Number != nil:
		return json.Marshal(*k.Number)
	case k.IDs != nil:
		return json.Marshal(k.IDs)
	case k.Categories != nil:
		return json.Marshal(k.Categories)
	}
	return []byte("null"), nil
}

// IsZero reports whether no variant of the key is set.
func (k AnswerKey) IsZero() bool {
	return k.Number == nil && k.IDs == nil && k.Categories == nil
}

// Item is one selectable entry of a category-selection scenario.
type Item struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Category is one bucket of a category-selection scenario.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SliderConfig bounds the slider widget.
type SliderConfig struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
	Label string  `json:"label"`
	Unit  string  `json:"unit,omitempty"`
}

// ChatOption is one selectable reply in a structured chat question.
type ChatOption struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// ChatQuestion is one turn of a structured chat scenario.
type ChatQuestion struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"prompt"`
	Options []ChatOption `json:"options"`
}

// SequenceEvent is one orderable entry of a sequence-ordering scenario.
type SequenceEvent struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Hotspot is one clickable region of a hotspot scenario. AlmostCorrect
// marks near-miss regions accepted at beginner difficulty.
type Hotspot struct {
	ID            int     `json:"id"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Size          float64 `json:"size"`
	Label         string  `json:"label"`
	AlmostCorrect bool    `json:"almostCorrect,omitempty"`
}

// Scenario is one immutable quiz item from the catalog. Only the config
// fields matching InteractionType are populated; everything besides the
// grading configuration is opaque display content.
type Scenario struct {
	ID              string          `json:"id"`
	Text            string          `json:"text"`
	Context         string          `json:"context,omitempty"`
	Difficulty      Difficulty      `json:"difficulty"`
	InteractionType InteractionType `json:"interactionType"`

	// multiple-choice
	Options []string `json:"options,omitempty"`

	// category-selection
	Items      []Item     `json:"items,omitempty"`
	Categories []Category `json:"categories,omitempty"`

	// slider
	SliderConfig *SliderConfig `json:"sliderConfig,omitempty"`

	// chat; a non-empty ChatQuestions selects structured grading,
	// otherwise the answer key's keyword list is used.
	ChatPrompt    string         `json:"chatPrompt,omitempty"`
	ChatQuestions []ChatQuestion `json:"chatQuestions,omitempty"`

	// sequence-ordering
	SequenceEvents []SequenceEvent `json:"sequenceEvents,omitempty"`

	// hotspot
	HotspotQuestion string    `json:"hotspotQuestion,omitempty"`
	Hotspots        []Hotspot `json:"hotspots,omitempty"`

	CorrectAnswer AnswerKey `json:"correctAnswer"`

	CorrectFeedback   string `json:"correctFeedback,omitempty"`
	IncorrectFeedback string `json:"incorrectFeedback,omitempty"`
	AdditionalInfo    string `json:"additionalInfo,omitempty"`
	LegalInfo         string `json:"legalInfo,omitempty"`
}

// WithoutKey returns a copy safe to send to clients: the answer key, the
// chat option correctness flags and the almost-correct hotspot flags are
// cleared so a client can never grade locally.
func (s Scenario) WithoutKey() Scenario {
	s.CorrectAnswer = AnswerKey{}
	if len(s.ChatQuestions) > 0 {
		questions := make([]ChatQuestion, len(s.ChatQuestions))
		for i, q := range s.ChatQuestions {
			options := make([]ChatOption, len(q.Options))
			for j, o := range q.Options {
				o.Correct = false
				options[j] = o
			}
			q.Options = options
			questions[i] = q
		}
		s.ChatQuestions = questions
	}
	if len(s.Hotspots) > 0 {
		hotspots := make([]Hotspot, len(s.Hotspots))
		for i, h := range s.Hotspots {
			h.AlmostCorrect = false
			hotspots[i] = h
		}
		s.Hotspots = hotspots
	}
	return s
}

// Answer records one completed scenario. The verdict is computed once at
// submission time and never recomputed.
type Answer struct {
	ScenarioID      string          `json:"scenarioId"`
	UserAnswer      any             `json:"userAnswer"`
	IsCorrect       bool            `json:"isCorrect"`
	InteractionType InteractionType `json:"interactionType"`
	Awarded         int             `json:"awarded"`
}

// SessionSnapshot is an immutable view of a session for presentation
// layers; sessions broadcast one after every mutation.
type SessionSnapshot struct {
	SessionID     string     `json:"sessionId"`
	Phase         Phase      `json:"phase"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	Score         int        `json:"score"`
	PreviousScore *int       `json:"previousScore,omitempty"`
	CurrentIndex  int        `json:"currentIndex"`
	QueueLength   int        `json:"queueLength"`
	Answers       []Answer   `json:"answers"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
