package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a game session has not been initialized.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrUnknownDifficulty is returned when a session start names no playable difficulty.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrEmptyQueue is returned when no valid scenario matches the chosen difficulty.
	ErrEmptyQueue = errors.New("no scenarios for difficulty")
	// ErrNotPlaying is returned when a playing-only action is invoked outside the playing phase.
	ErrNotPlaying = errors.New("session is not in the playing phase")
	// ErrPendingAdvance is returned when a scenario is submitted twice without an advance.
	ErrPendingAdvance = errors.New("answer already submitted, advance first")
	// ErrNoPendingAnswer is returned when advance is called before a submission.
	ErrNoPendingAnswer = errors.New("no submitted answer to advance past")
	// ErrCatalogUnavailable indicates the scenario catalog could not be loaded.
	ErrCatalogUnavailable = errors.New("scenario catalog unavailable")
)
