// Package catalog validates and filters scenario records before they can
// enter a session queue. A scenario whose declared interaction type lacks
// its required configuration is excluded and reported so content authors
// can fix it, never silently skipped.
package catalog

import (
	"fmt"

	"websafe-game-service/internal/domain"
)

// Fault describes one malformed catalog entry.
type Fault struct {
	ScenarioID string
	Reason     string
}

func (f Fault) String() string {
	return fmt.Sprintf("scenario %q: %s", f.ScenarioID, f.Reason)
}

// Validate checks that a scenario carries the configuration its declared
// interaction type requires.
func Validate(s domain.Scenario) error {
	if s.ID == "" {
		return fmt.Errorf("missing id")
	}
	if s.Difficulty != domain.DifficultyAll && !s.Difficulty.Playable() {
		return fmt.Errorf("unknown difficulty %q", s.Difficulty)
	}
	if !s.InteractionType.Known() {
		return fmt.Errorf("unknown interaction type %q", s.InteractionType)
	}

	switch s.InteractionType {
	case domain.InteractionMultipleChoice:
		if len(s.Options) == 0 {
			return fmt.Errorf("multiple-choice scenario has no options")
		}
		if s.CorrectAnswer.Number == nil {
			return fmt.Errorf("multiple-choice scenario has no numeric answer key")
		}
	case domain.InteractionCategorySelection:
		if len(s.Items) == 0 || len(s.Categories) == 0 {
			return fmt.Errorf("category-selection scenario needs items and categories")
		}
		if len(s.CorrectAnswer.Categories) == 0 {
			return fmt.Errorf("category-selection scenario has no category answer key")
		}
	case domain.InteractionSlider:
		if s.SliderConfig == nil {
			return fmt.Errorf("slider scenario has no slider config")
		}
		if s.CorrectAnswer.Number == nil {
			return fmt.Errorf("slider scenario has no numeric target")
		}
	case domain.InteractionChat:
		if len(s.ChatQuestions) > 0 {
			for _, q := range s.ChatQuestions {
				if q.ID == "" || len(q.Options) == 0 {
					return fmt.Errorf("chat question %q has no options", q.ID)
				}
			}
		} else if len(s.CorrectAnswer.IDs) == 0 {
			return fmt.Errorf("chat scenario has neither structured questions nor keywords")
		}
	case domain.InteractionSequenceOrdering:
		if len(s.SequenceEvents) == 0 {
			return fmt.Errorf("sequence-ordering scenario has no events")
		}
		if len(s.CorrectAnswer.IDs) == 0 {
			return fmt.Errorf("sequence-ordering scenario has no expected order")
		}
	case domain.InteractionHotspot:
		if len(s.Hotspots) == 0 {
			return fmt.Errorf("hotspot scenario has no hotspots")
		}
		if s.CorrectAnswer.Number == nil {
			return fmt.Errorf("hotspot scenario has no numeric answer key")
		}
	}
	return nil
}

// Partition splits a catalog into valid scenarios (order preserved) and
// faults for the malformed ones.
func Partition(scenarios []domain.Scenario) ([]domain.Scenario, []Fault) {
	valid := make([]domain.Scenario, 0, len(scenarios))
	var faults []Fault
	for _, s := range scenarios {
		if err := Validate(s); err != nil {
			faults = append(faults, Fault{ScenarioID: s.ID, Reason: err.Error()})
			continue
		}
		valid = append(valid, s)
	}
	return valid, faults
}

// FilterByDifficulty returns the ordered subsequence playable at the given
// difficulty: scenarios tagged with that difficulty or with "all".
func FilterByDifficulty(scenarios []domain.Scenario, difficulty domain.Difficulty) []domain.Scenario {
	queue := make([]domain.Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		if s.Difficulty == difficulty || s.Difficulty == domain.DifficultyAll {
			queue = append(queue, s)
		}
	}
	return queue
}
