package app

import (
	"sync"
	"time"

	"websafe-game-service/internal/domain"
)

// Session owns one playthrough: phase, scenario queue, score and answer
// history. All mutation goes through the explicit transitions below; the
// submit/advance split is deliberate so a presentation layer can show
// feedback before moving on, instead of racing a timer.
type Session struct {
	id  string
	now func() time.Time

	mu            sync.RWMutex
	phase         domain.Phase
	difficulty    domain.Difficulty
	queue         []domain.Scenario
	current       int
	score         int
	previousScore *int
	answers       []domain.Answer
	pending       bool
	subscribers   map[chan domain.SessionSnapshot]struct{}
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string) *Session {
	return newSessionWithClock(id, time.Now)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id string, now func() time.Time) *Session {
	return newSessionWithClock(id, now)
}

func newSessionWithClock(id string, now func() time.Time) *Session {
	return &Session{
		id:          id,
		now:         now,
		phase:       domain.PhaseIntro,
		subscribers: make(map[chan domain.SessionSnapshot]struct{}),
	}
}

// start moves intro → playing with a fixed queue. The queue must already be
// validated and filtered; an empty one keeps the session in intro.
func (s *Session) start(difficulty domain.Difficulty, queue []domain.Scenario) (domain.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(queue) == 0 {
		return s.snapshotLocked(), domain.ErrEmptyQueue
	}

	s.phase = domain.PhasePlaying
	s.difficulty = difficulty
	s.queue = queue
	s.current = 0
	s.score = 0
	s.previousScore = nil
	s.answers = nil
	s.pending = false
	return s.broadcastLocked(), nil
}

// submit records the graded answer for the current scenario and applies its
// score delta. The index does not move until advance.
func (s *Session) submit(answer domain.Answer) (domain.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhasePlaying {
		return s.snapshotLocked(), domain.ErrNotPlaying
	}
	if s.pending {
		return s.snapshotLocked(), domain.ErrPendingAdvance
	}

	prev := s.score
	s.previousScore = &prev
	s.score += answer.Awarded
	s.answers = append(s.answers, answer)
	s.pending = true
	return s.broadcastLocked(), nil
}

// advance moves past the answered scenario, ending in results when the
// queue is exhausted.
func (s *Session) advance() (domain.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhasePlaying {
		return s.snapshotLocked(), domain.ErrNotPlaying
	}
	if !s.pending {
		return s.snapshotLocked(), domain.ErrNoPendingAnswer
	}

	s.pending = false
	s.current++
	if s.current == len(s.queue) {
		s.phase = domain.PhaseResults
	}
	return s.broadcastLocked(), nil
}

// restart returns to intro from any phase, clearing every session field.
func (s *Session) restart() domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = domain.PhaseIntro
	s.difficulty = ""
	s.queue = nil
	s.current = 0
	s.score = 0
	s.previousScore = nil
	s.answers = nil
	s.pending = false
	return s.broadcastLocked()
}

// currentScenario returns the scenario at the queue pointer. It stays the
// same between submit and advance so feedback can reference it.
func (s *Session) currentScenario() (domain.Scenario, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.phase != domain.PhasePlaying || s.current >= len(s.queue) {
		return domain.Scenario{}, false
	}
	return s.queue[s.current], true
}

// Difficulty returns the session difficulty chosen at start.
func (s *Session) Difficulty() domain.Difficulty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.difficulty
}

// Snapshot returns the current read-only view of the session.
func (s *Session) Snapshot() domain.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) subscribe() (<-chan domain.SessionSnapshot, func()) {
	ch := make(chan domain.SessionSnapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) broadcastLocked() domain.SessionSnapshot {
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the stale update so a slow client never blocks the session.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}

func (s *Session) snapshotLocked() domain.SessionSnapshot {
	answers := make([]domain.Answer, len(s.answers))
	copy(answers, s.answers)

	var prev *int
	if s.previousScore != nil {
		p := *s.previousScore
		prev = &p
	}

	return domain.SessionSnapshot{
		SessionID:     s.id,
		Phase:         s.phase,
		Difficulty:    s.difficulty,
		Score:         s.score,
		PreviousScore: prev,
		CurrentIndex:  s.current,
		QueueLength:   len(s.queue),
		Answers:       answers,
		UpdatedAt:     s.now(),
	}
}
