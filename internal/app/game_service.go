package app

import (
	"context"
	"log"

	"websafe-game-service/internal/catalog"
	"websafe-game-service/internal/domain"
	"websafe-game-service/internal/engine"
)

// SessionRepository abstracts how game sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(sessionID string) *Session
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// CatalogRepository loads the scenario catalog (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context) ([]domain.Scenario, error)
}

// GameService contains the game use cases: one observable session per
// player, driven through start/submit/advance/restart.
type GameService struct {
	sessions SessionRepository
	catalog  CatalogRepository
}

func NewGameService(store SessionRepository, catalogRepo CatalogRepository) *GameService {
	return &GameService{sessions: store, catalog: catalogRepo}
}

// Attach ensures a session exists for the given id and returns its snapshot.
func (g *GameService) Attach(_ context.Context, sessionID string) domain.SessionSnapshot {
	return g.sessions.GetOrCreate(sessionID).Snapshot()
}

// Start begins a playthrough at the chosen difficulty. Malformed catalog
// entries are excluded from the queue and logged; an empty queue leaves the
// session in intro and reports domain.ErrEmptyQueue.
func (g *GameService) Start(ctx context.Context, sessionID string, difficulty domain.Difficulty) (domain.SessionSnapshot, error) {
	session := g.sessions.GetOrCreate(sessionID)
	if !difficulty.Playable() {
		return session.Snapshot(), domain.ErrUnknownDifficulty
	}

	scenarios, err := g.catalog.GetCatalog(ctx)
	if err != nil {
		return session.Snapshot(), err
	}

	valid, faults := catalog.Partition(scenarios)
	for _, fault := range faults {
		log.Printf("catalog: excluding malformed %s", fault)
	}

	queue := catalog.FilterByDifficulty(valid, difficulty)
	return session.start(difficulty, queue)
}

// CurrentScenario returns the scenario at the queue pointer, or false when
// the session is not playing or the queue is exhausted.
func (g *GameService) CurrentScenario(_ context.Context, sessionID string) (domain.Scenario, bool, error) {
	session, ok := g.sessions.Get(sessionID)
	if !ok {
		return domain.Scenario{}, false, domain.ErrSessionNotFound
	}
	scenario, ok := session.currentScenario()
	return scenario, ok, nil
}

// Submit grades the submission against the current scenario, applies the
// scoring policy and records the answer. The session stays on the same
// scenario until Advance so feedback can be shown first.
func (g *GameService) Submit(_ context.Context, sessionID string, submitted any) (domain.Answer, domain.SessionSnapshot, error) {
	session, ok := g.sessions.Get(sessionID)
	if !ok {
		return domain.Answer{}, domain.SessionSnapshot{}, domain.ErrSessionNotFound
	}

	scenario, ok := session.currentScenario()
	if !ok {
		return domain.Answer{}, session.Snapshot(), domain.ErrNotPlaying
	}

	difficulty := session.Difficulty()
	correct := engine.Evaluate(scenario, submitted, difficulty)
	answer := domain.Answer{
		ScenarioID:      scenario.ID,
		UserAnswer:      submitted,
		IsCorrect:       correct,
		InteractionType: scenario.InteractionType,
		Awarded:         ScoreDelta(difficulty, correct),
	}

	snap, err := session.submit(answer)
	if err != nil {
		return domain.Answer{}, snap, err
	}
	return answer, snap, nil
}

// Advance moves past the answered scenario, transitioning to results when
// the queue is exhausted.
func (g *GameService) Advance(_ context.Context, sessionID string) (domain.SessionSnapshot, error) {
	session, ok := g.sessions.Get(sessionID)
	if !ok {
		return domain.SessionSnapshot{}, domain.ErrSessionNotFound
	}
	return session.advance()
}

// Restart returns the session to intro from any phase.
func (g *GameService) Restart(_ context.Context, sessionID string) (domain.SessionSnapshot, error) {
	session, ok := g.sessions.Get(sessionID)
	if !ok {
		return domain.SessionSnapshot{}, domain.ErrSessionNotFound
	}
	return session.restart(), nil
}

// Snapshot returns the session's current read-only view.
func (g *GameService) Snapshot(_ context.Context, sessionID string) (domain.SessionSnapshot, error) {
	session, ok := g.sessions.Get(sessionID)
	if !ok {
		return domain.SessionSnapshot{}, domain.ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

// Subscribe returns a channel that receives session snapshots after every
// mutation. The caller must invoke the returned cancel function to avoid leaks.
func (g *GameService) Subscribe(_ context.Context, sessionID string) (<-chan domain.SessionSnapshot, func(), error) {
	session, ok := g.sessions.Get(sessionID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

// End discards the session, e.g. when its client disconnects.
func (g *GameService) End(_ context.Context, sessionID string) {
	g.sessions.Delete(sessionID)
}
