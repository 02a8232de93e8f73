package app

import "websafe-game-service/internal/domain"

var pointsPerCorrect = map[domain.Difficulty]int{
	domain.DifficultyBeginner:     10,
	domain.DifficultyIntermediate: 15,
	domain.DifficultyAdvanced:     20,
}

// PointsPerCorrect returns the points one correct answer is worth at the
// given difficulty.
func PointsPerCorrect(difficulty domain.Difficulty) int {
	return pointsPerCorrect[difficulty]
}

// ScoreDelta is the scoring policy: the point delta for one verdict.
// Incorrect answers never subtract points.
func ScoreDelta(difficulty domain.Difficulty, correct bool) int {
	if !correct {
		return 0
	}
	return PointsPerCorrect(difficulty)
}
