// Package engine grades submitted answers against scenario answer keys.
// Grading is pure and deterministic: no I/O, no mutation of the scenario,
// and no errors — malformed or un-coercible submissions are simply wrong.
//
// Higher difficulty tightens thresholds uniformly: beginners get partial
// credit so near-misses are not discouraging, advanced demands exact
// mastery.
package engine

import (
	"strings"

	"websafe-game-service/internal/domain"
)

// Slider tolerance per difficulty (absolute distance from the target).
const (
	sliderToleranceBeginner     = 20
	sliderToleranceIntermediate = 15
	sliderToleranceAdvanced     = 10
)

// Chat correctness thresholds (percent of questions/keywords).
const (
	chatThresholdBeginner     = 60
	chatThresholdIntermediate = 75
	chatThresholdAdvanced     = 90
)

// Evaluate returns the verdict for a submission against a scenario at the
// given difficulty. Same inputs always yield the same verdict.
func Evaluate(s domain.Scenario, submitted any, difficulty domain.Difficulty) bool {
	switch s.InteractionType {
	case domain.InteractionMultipleChoice:
		return evaluateChoice(s.CorrectAnswer.Number, submitted)
	case domain.InteractionCategorySelection:
		return evaluateCategories(s.CorrectAnswer.Categories, submitted, difficulty)
	case domain.InteractionSlider:
		return evaluateSlider(s.CorrectAnswer.Number, submitted, difficulty)
	case domain.InteractionChat:
		if len(s.ChatQuestions) > 0 {
			return evaluateChatStructured(s.ChatQuestions, submitted, difficulty)
		}
		return evaluateChatKeywords(s.CorrectAnswer.IDs, submitted, difficulty)
	case domain.InteractionSequenceOrdering:
		return evaluateSequence(s.CorrectAnswer.IDs, submitted, difficulty)
	case domain.InteractionHotspot:
		return evaluateHotspot(s, submitted, difficulty)
	}
	return false
}

func evaluateChoice(key *float64, submitted any) bool {
	if key == nil {
		return false
	}
	choice, ok := asNumber(submitted)
	return ok && choice == *key
}

// evaluateCategories grades an item-to-category assignment. The aggregation
// granularity differs by difficulty, not just the threshold: beginner pools
// every expected item into one fraction, intermediate holds each category
// to its own fraction, advanced requires exact set equality per category.
// A category missing from the submission counts as zero correct placements,
// never as an error.
func evaluateCategories(expected map[string][]string, submitted any, difficulty domain.Difficulty) bool {
	if len(expected) == 0 {
		return false
	}
	placed, ok := asCategoryMap(submitted)
	if !ok {
		return false
	}

	switch difficulty {
	case domain.DifficultyBeginner:
		totalCorrect, totalExpected := 0, 0
		for categoryID, want := range expected {
			totalExpected += len(want)
			totalCorrect += countPlaced(want, placed[categoryID])
		}
		if totalExpected == 0 {
			return false
		}
		return percent(totalCorrect, totalExpected) >= 70
	case domain.DifficultyIntermediate:
		for categoryID, want := range expected {
			got, ok := placed[categoryID]
			if !ok || len(want) == 0 {
				return false
			}
			if percent(countPlaced(want, got), len(want)) < 80 {
				return false
			}
		}
		return true
	default:
		// Advanced: same size, same members, every category.
		for categoryID, want := range expected {
			got, ok := placed[categoryID]
			if !ok {
				return false
			}
			gotSet := toSet(got)
			if len(gotSet) != len(toSet(want)) {
				return false
			}
			for _, item := range want {
				if _, ok := gotSet[item]; !ok {
					return false
				}
			}
		}
		return true
	}
}

func evaluateSlider(target *float64, submitted any, difficulty domain.Difficulty) bool {
	if target == nil {
		return false
	}
	value, ok := asNumber(submitted)
	if !ok {
		return false
	}
	tolerance := float64(sliderToleranceAdvanced)
	switch difficulty {
	case domain.DifficultyBeginner:
		tolerance = sliderToleranceBeginner
	case domain.DifficultyIntermediate:
		tolerance = sliderToleranceIntermediate
	}
	diff := value - *target
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// evaluateChatStructured grades per-question option picks. The submission
// maps question id to the text of the selected option; an unanswered or
// unmatched question simply scores zero for that question.
func evaluateChatStructured(questions []domain.ChatQuestion, submitted any, difficulty domain.Difficulty) bool {
	if len(questions) == 0 {
		return false
	}
	responses, ok := asResponseMap(submitted)
	if !ok {
		return false
	}

	correct := 0
	for _, q := range questions {
		text, ok := responses[q.ID]
		if !ok || text == "" {
			continue
		}
		for _, option := range q.Options {
			if option.Text == text {
				if option.Correct {
					correct++
				}
				break
			}
		}
	}
	return percent(correct, len(questions)) >= chatThreshold(difficulty, false)
}

// evaluateChatKeywords is the legacy free-text strategy kept for catalogs
// that predate structured chat questions: the answer key lists required
// keywords matched as substrings of the normalized submission.
func evaluateChatKeywords(keywords []string, submitted any, difficulty domain.Difficulty) bool {
	if len(keywords) == 0 {
		return false
	}
	text := normalizeText(asText(submitted))

	matched := 0
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if containsKeyword(text, keyword) {
			matched++
		}
	}
	if difficulty == domain.DifficultyAdvanced {
		// All keywords required, not 90%.
		return matched == len(keywords)
	}
	return percent(matched, len(keywords)) >= chatThreshold(difficulty, true)
}

func containsKeyword(normalizedText, keyword string) bool {
	needle := normalizeText(keyword)
	return needle != "" && strings.Contains(normalizedText, needle)
}

// evaluateSequence grades position-by-position. Mismatched lengths are
// always wrong regardless of difficulty; beginner needs 70% of positions,
// intermediate allows a single positional error, advanced allows none.
func evaluateSequence(expected []string, submitted any, difficulty domain.Difficulty) bool {
	if len(expected) == 0 {
		return false
	}
	sequence, ok := asStringSlice(submitted)
	if !ok || len(sequence) != len(expected) {
		return false
	}

	correct := 0
	for i := range expected {
		if sequence[i] == expected[i] {
			correct++
		}
	}

	switch difficulty {
	case domain.DifficultyBeginner:
		return percent(correct, len(expected)) >= 70
	case domain.DifficultyIntermediate:
		return len(expected)-correct <= 1
	default:
		return correct == len(expected)
	}
}

// evaluateHotspot is numeric equality on the hotspot id, except that at
// beginner difficulty any hotspot flagged almost-correct is also accepted.
func evaluateHotspot(s domain.Scenario, submitted any, difficulty domain.Difficulty) bool {
	if s.CorrectAnswer.Number == nil {
		return false
	}
	choice, ok := asNumber(submitted)
	if !ok {
		return false
	}
	if choice == *s.CorrectAnswer.Number {
		return true
	}
	if difficulty != domain.DifficultyBeginner {
		return false
	}
	for _, h := range s.Hotspots {
		if h.AlmostCorrect && float64(h.ID) == choice {
			return true
		}
	}
	return false
}

func chatThreshold(difficulty domain.Difficulty, legacy bool) float64 {
	switch difficulty {
	case domain.DifficultyBeginner:
		return chatThresholdBeginner
	case domain.DifficultyIntermediate:
		return chatThresholdIntermediate
	}
	if legacy {
		// Legacy advanced is handled by the caller as an exact match.
		return 100
	}
	return chatThresholdAdvanced
}

func countPlaced(want, got []string) int {
	gotSet := toSet(got)
	n := 0
	for _, item := range want {
		if _, ok := gotSet[item]; ok {
			n++
		}
	}
	return n
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
