package engine_test

import (
	"testing"

	"websafe-game-service/internal/domain"
	"websafe-game-service/internal/engine"
)

func numberKey(n float64) domain.AnswerKey {
	return domain.AnswerKey{Number: &n}
}

func TestMultipleChoice(t *testing.T) {
	scenario := domain.Scenario{
		InteractionType: domain.InteractionMultipleChoice,
		Options:         []string{"a", "b", "c"},
		CorrectAnswer:   numberKey(2),
	}

	cases := []struct {
		name      string
		submitted any
		want      bool
	}{
		{"matching index", float64(2), true},
		{"matching index as string", "2", true},
		{"wrong index", float64(1), false},
		{"non-numeric string", "two", false},
		{"nil submission", nil, false},
		{"slice submission", []any{"2"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, d := range []domain.Difficulty{domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced} {
				if got := engine.Evaluate(scenario, tc.submitted, d); got != tc.want {
					t.Fatalf("difficulty %s: got %v, want %v", d, got, tc.want)
				}
			}
		})
	}
}

func categoryScenario() domain.Scenario {
	return domain.Scenario{
		InteractionType: domain.InteractionCategorySelection,
		Items: []domain.Item{
			{ID: "i1"}, {ID: "i2"}, {ID: "i3"}, {ID: "i4"}, {ID: "i5"},
		},
		Categories: []domain.Category{{ID: "good"}, {ID: "bad"}},
		CorrectAnswer: domain.AnswerKey{Categories: map[string][]string{
			"good": {"i1", "i2", "i3"},
			"bad":  {"i4", "i5"},
		}},
	}
}

func TestCategorySelectionBeginnerAggregates(t *testing.T) {
	scenario := categoryScenario()

	// 4 of 5 expected items placed correctly: 80% >= 70%.
	answer := map[string]any{
		"good": []any{"i1", "i2", "i3"},
		"bad":  []any{"i4", "i1"},
	}
	if !engine.Evaluate(scenario, answer, domain.DifficultyBeginner) {
		t.Fatalf("expected 80%% aggregate to pass at beginner")
	}

	// 3 of 5: 60% < 70%.
	answer = map[string]any{
		"good": []any{"i1", "i2"},
		"bad":  []any{"i4"},
	}
	if engine.Evaluate(scenario, answer, domain.DifficultyBeginner) {
		t.Fatalf("expected 60%% aggregate to fail at beginner")
	}
}

func TestCategorySelectionMissingCategoryScoresZero(t *testing.T) {
	scenario := categoryScenario()

	// "bad" missing entirely: beginner still counts the 3 "good" placements
	// (60% aggregate, fails the 70% bar); intermediate fails outright.
	answer := map[string]any{"good": []any{"i1", "i2", "i3"}}
	if engine.Evaluate(scenario, answer, domain.DifficultyBeginner) {
		t.Fatalf("expected missing category to drag aggregate below 70%%")
	}
	if engine.Evaluate(scenario, answer, domain.DifficultyIntermediate) {
		t.Fatalf("expected missing category to fail intermediate")
	}
}

func TestCategorySelectionIntermediatePerCategory(t *testing.T) {
	scenario := categoryScenario()

	// good: 3/3 = 100%, bad: 2/2 = 100%.
	answer := map[string]any{
		"good": []any{"i1", "i2", "i3"},
		"bad":  []any{"i4", "i5"},
	}
	if !engine.Evaluate(scenario, answer, domain.DifficultyIntermediate) {
		t.Fatalf("expected fully correct placement to pass")
	}

	// good drops to 2/3 = 66%: the category fails even though the
	// aggregate (4/5 = 80%) would pass the beginner rule.
	answer = map[string]any{
		"good": []any{"i1", "i2"},
		"bad":  []any{"i4", "i5"},
	}
	if !engine.Evaluate(scenario, answer, domain.DifficultyBeginner) {
		t.Fatalf("expected 80%% aggregate to pass at beginner")
	}
	if engine.Evaluate(scenario, answer, domain.DifficultyIntermediate) {
		t.Fatalf("expected 66%% category to fail at intermediate")
	}
}

func TestCategorySelectionAdvancedExactSets(t *testing.T) {
	scenario := categoryScenario()

	exact := map[string]any{
		"good": []any{"i3", "i1", "i2"}, // order inside a category is irrelevant
		"bad":  []any{"i5", "i4"},
	}
	if !engine.Evaluate(scenario, exact, domain.DifficultyAdvanced) {
		t.Fatalf("expected set-equal placement to pass at advanced")
	}

	// Removing any single item flips the verdict.
	missing := map[string]any{
		"good": []any{"i1", "i2"},
		"bad":  []any{"i4", "i5"},
	}
	if engine.Evaluate(scenario, missing, domain.DifficultyAdvanced) {
		t.Fatalf("expected missing item to fail at advanced")
	}

	// Adding an extra item flips it too.
	extra := map[string]any{
		"good": []any{"i1", "i2", "i3", "i4"},
		"bad":  []any{"i4", "i5"},
	}
	if engine.Evaluate(scenario, extra, domain.DifficultyAdvanced) {
		t.Fatalf("expected extra item to fail at advanced")
	}
}

func TestSliderToleranceBoundaries(t *testing.T) {
	scenario := domain.Scenario{
		InteractionType: domain.InteractionSlider,
		SliderConfig:    &domain.SliderConfig{Min: 0, Max: 100, Step: 1},
		CorrectAnswer:   numberKey(50),
	}

	cases := []struct {
		difficulty domain.Difficulty
		value      float64
		want       bool
	}{
		{domain.DifficultyBeginner, 30, true},
		{domain.DifficultyBeginner, 70, true},
		{domain.DifficultyBeginner, 29, false},
		{domain.DifficultyBeginner, 71, false},
		{domain.DifficultyIntermediate, 35, true},
		{domain.DifficultyIntermediate, 34, false},
		{domain.DifficultyAdvanced, 60, true},
		{domain.DifficultyAdvanced, 61, false},
	}
	for _, tc := range cases {
		if got := engine.Evaluate(scenario, tc.value, tc.difficulty); got != tc.want {
			t.Errorf("%s value=%v: got %v, want %v", tc.difficulty, tc.value, got, tc.want)
		}
	}

	if engine.Evaluate(scenario, "fifty", domain.DifficultyBeginner) {
		t.Fatalf("expected non-numeric slider value to be incorrect")
	}
}

func structuredChatScenario() domain.Scenario {
	question := func(id string, correctText string, others ...string) domain.ChatQuestion {
		options := []domain.ChatOption{{ID: id + "-ok", Text: correctText, Correct: true}}
		for i, text := range others {
			options = append(options, domain.ChatOption{ID: id + "-alt" + string(rune('a'+i)), Text: text})
		}
		return domain.ChatQuestion{ID: id, Prompt: id + "?", Options: options}
	}
	return domain.Scenario{
		InteractionType: domain.InteractionChat,
		ChatQuestions: []domain.ChatQuestion{
			question("q1", "right one", "wrong one"),
			question("q2", "right two", "wrong two"),
			question("q3", "right three", "wrong three"),
			question("q4", "right four", "wrong four"),
		},
	}
}

func TestChatStructuredThresholds(t *testing.T) {
	scenario := structuredChatScenario()

	// 3 of 4 correct = 75%.
	responses := map[string]any{
		"q1": "right one",
		"q2": "right two",
		"q3": "right three",
		"q4": "wrong four",
	}
	if !engine.Evaluate(scenario, responses, domain.DifficultyBeginner) {
		t.Fatalf("75%% should pass beginner (>=60)")
	}
	if !engine.Evaluate(scenario, responses, domain.DifficultyIntermediate) {
		t.Fatalf("75%% should pass intermediate (>=75)")
	}
	if engine.Evaluate(scenario, responses, domain.DifficultyAdvanced) {
		t.Fatalf("75%% should fail advanced (>=90)")
	}

	// All 4 correct passes advanced; unanswered questions score zero.
	responses["q4"] = "right four"
	if !engine.Evaluate(scenario, responses, domain.DifficultyAdvanced) {
		t.Fatalf("100%% should pass advanced")
	}
	delete(responses, "q1")
	delete(responses, "q2")
	if engine.Evaluate(scenario, responses, domain.DifficultyBeginner) {
		t.Fatalf("2 of 4 (50%%) should fail beginner")
	}
}

func TestChatLegacyKeywords(t *testing.T) {
	scenario := domain.Scenario{
		InteractionType: domain.InteractionChat,
		CorrectAnswer:   domain.AnswerKey{IDs: []string{"conversa", "empatia", "denúncia", "apoio"}},
	}

	// Accent-insensitive: "denuncia" matches "denúncia". 3 of 4 = 75%.
	text := "Primeiro uma conversa aberta, com empatia, e explicar a denuncia."
	if !engine.Evaluate(scenario, text, domain.DifficultyBeginner) {
		t.Fatalf("75%% of keywords should pass beginner")
	}
	if !engine.Evaluate(scenario, text, domain.DifficultyIntermediate) {
		t.Fatalf("75%% of keywords should pass intermediate")
	}
	// Advanced requires every keyword; one missing flips the verdict.
	if engine.Evaluate(scenario, text, domain.DifficultyAdvanced) {
		t.Fatalf("a missing keyword should fail advanced")
	}
	if !engine.Evaluate(scenario, text+" e oferecer apoio.", domain.DifficultyAdvanced) {
		t.Fatalf("all keywords present should pass advanced")
	}

	// Structured questions win over keywords when both are present.
	structured := structuredChatScenario()
	structured.CorrectAnswer = scenario.CorrectAnswer
	if engine.Evaluate(structured, "conversa empatia denúncia apoio", domain.DifficultyBeginner) {
		t.Fatalf("free text should not grade against structured questions")
	}
}

func sequenceScenario() domain.Scenario {
	return domain.Scenario{
		InteractionType: domain.InteractionSequenceOrdering,
		SequenceEvents: []domain.SequenceEvent{
			{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
		},
		CorrectAnswer: domain.AnswerKey{IDs: []string{"a", "b", "c", "d", "e"}},
	}
}

func TestSequenceOrdering(t *testing.T) {
	scenario := sequenceScenario()

	exact := []any{"a", "b", "c", "d", "e"}
	for _, d := range []domain.Difficulty{domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced} {
		if !engine.Evaluate(scenario, exact, d) {
			t.Fatalf("exact order should pass at %s", d)
		}
	}

	// Two swapped positions: 3/5 = 60% < 70% at beginner, 2 errors > 1 at
	// intermediate, not exact at advanced.
	swapped := []any{"b", "a", "c", "d", "e"}
	if engine.Evaluate(scenario, swapped, domain.DifficultyBeginner) {
		t.Fatalf("60%% positions should fail beginner")
	}
	if engine.Evaluate(scenario, swapped, domain.DifficultyIntermediate) {
		t.Fatalf("2 positional errors should fail intermediate")
	}
	if engine.Evaluate(scenario, swapped, domain.DifficultyAdvanced) {
		t.Fatalf("swapped order should fail advanced")
	}

	// A single wrong entry (1 error, 80% positions) passes beginner and
	// intermediate but not advanced.
	oneOff := []any{"a", "b", "c", "d", "x"}
	if !engine.Evaluate(scenario, oneOff, domain.DifficultyBeginner) {
		t.Fatalf("80%% positions should pass beginner")
	}
	if !engine.Evaluate(scenario, oneOff, domain.DifficultyIntermediate) {
		t.Fatalf("1 positional error should pass intermediate")
	}
	if engine.Evaluate(scenario, oneOff, domain.DifficultyAdvanced) {
		t.Fatalf("any error should fail advanced")
	}

	// Length mismatch is always false.
	short := []any{"a", "b", "c", "d"}
	for _, d := range []domain.Difficulty{domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced} {
		if engine.Evaluate(scenario, short, d) {
			t.Fatalf("length mismatch should fail at %s", d)
		}
	}
}

func TestSequenceFullReversal(t *testing.T) {
	scenario := sequenceScenario()
	reversed := []any{"e", "d", "c", "b", "a"}
	if engine.Evaluate(scenario, reversed, domain.DifficultyBeginner) {
		t.Fatalf("reversal leaves only 20%% of positions, should fail beginner")
	}
}

func hotspotScenario() domain.Scenario {
	return domain.Scenario{
		InteractionType: domain.InteractionHotspot,
		Hotspots: []domain.Hotspot{
			{ID: 1, Label: "wrong"},
			{ID: 2, Label: "right"},
			{ID: 3, Label: "close", AlmostCorrect: true},
			{ID: 4, Label: "wrong too"},
		},
		CorrectAnswer: numberKey(2),
	}
}

func TestHotspot(t *testing.T) {
	scenario := hotspotScenario()

	for _, d := range []domain.Difficulty{domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced} {
		if !engine.Evaluate(scenario, float64(2), d) {
			t.Fatalf("exact hotspot should pass at %s", d)
		}
		if engine.Evaluate(scenario, float64(4), d) {
			t.Fatalf("plain wrong hotspot should fail at %s", d)
		}
	}

	// Almost-correct hotspots only count at beginner.
	if !engine.Evaluate(scenario, float64(3), domain.DifficultyBeginner) {
		t.Fatalf("almost-correct hotspot should pass at beginner")
	}
	if engine.Evaluate(scenario, float64(3), domain.DifficultyIntermediate) {
		t.Fatalf("almost-correct hotspot should fail at intermediate")
	}
	if engine.Evaluate(scenario, "not a number", domain.DifficultyBeginner) {
		t.Fatalf("non-numeric hotspot pick should be incorrect")
	}
}

func TestEvaluateIsDeterministicAndPure(t *testing.T) {
	scenario := categoryScenario()
	answer := map[string]any{
		"good": []any{"i1", "i2", "i3"},
		"bad":  []any{"i4", "i5"},
	}

	first := engine.Evaluate(scenario, answer, domain.DifficultyAdvanced)
	for i := 0; i < 10; i++ {
		if engine.Evaluate(scenario, answer, domain.DifficultyAdvanced) != first {
			t.Fatalf("verdict changed between identical evaluations")
		}
	}
	if len(scenario.CorrectAnswer.Categories["good"]) != 3 {
		t.Fatalf("evaluate mutated the scenario answer key")
	}
}
