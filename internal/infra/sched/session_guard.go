package sched

import (
	"context"
	"errors"
	"sync"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/ports/repository"
	"universidad-sunshine/internal/infra/metrics"
	"universidad-sunshine/internal/usecase"

	"github.com/rs/zerolog"
)

var _ usecase.SessionWatcher = (*SessionGuard)(nil)

// Notifier receives session lifecycle notices. The web layer implements it to
// surface the pre-expiry warning and the forced logout to clients.
type Notifier interface {
	SessionExpiring(sessionID string, expiresAt time.Time)
	SessionExpired(sessionID string)
}

type timerPair struct {
	warn    *time.Timer
	expire  *time.Timer
	recheck *time.Ticker
	done    chan struct{}
}

// SessionGuard owns at most one timer pair per session: a warning timer that
// fires warnLead before expiry, a hard expiry timer, and a periodic re-check
// that catches sessions killed out of band (e.g. logout from another tab).
// Watch always clears the previous pair before arming a new one.
type SessionGuard struct {
	sessions repository.SessionRepository
	notifier Notifier
	warnLead time.Duration
	every    time.Duration
	now      func() time.Time

	mu    sync.Mutex
	pairs map[string]*timerPair

	log *zerolog.Logger
}

func NewSessionGuard(sessions repository.SessionRepository, notifier Notifier, warnLead, checkEvery time.Duration, logger *zerolog.Logger) *SessionGuard {
	guardLog := logger.With().Str("component", "SessionGuard").Logger()
	return &SessionGuard{
		sessions: sessions,
		notifier: notifier,
		warnLead: warnLead,
		every:    checkEvery,
		now:      time.Now,
		pairs:    make(map[string]*timerPair),
		log:      &guardLog,
	}
}

func (g *SessionGuard) Watch(sessionID string, expiresAt time.Time) {
	remaining := expiresAt.Sub(g.now())
	if remaining <= 0 {
		// Already expired at arm time: end it now, no grace timer.
		g.expire(sessionID, "immediate")
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Clear before arm: a re-login reuses the session ID slot.
	g.stopLocked(sessionID)

	pair := &timerPair{done: make(chan struct{})}
	warnIn := remaining - g.warnLead
	if warnIn < 0 {
		warnIn = 0
	}
	pair.warn = time.AfterFunc(warnIn, func() {
		g.log.Debug().Str("session_id", sessionID).Msg("session expiry warning")
		if g.notifier != nil {
			g.notifier.SessionExpiring(sessionID, expiresAt)
		}
	})
	pair.expire = time.AfterFunc(remaining, func() {
		g.expire(sessionID, "warning")
	})
	pair.recheck = time.NewTicker(g.every)
	go g.recheckLoop(sessionID, pair)

	g.pairs[sessionID] = pair
	metrics.SetActiveSessions(len(g.pairs))
}

func (g *SessionGuard) recheckLoop(sessionID string, pair *timerPair) {
	for {
		select {
		case <-pair.done:
			return
		case <-pair.recheck.C:
			s, err := g.sessions.Get(context.Background(), sessionID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Killed out of band; tear down our timers.
					g.expire(sessionID, "recheck")
					return
				}
				g.log.Warn().Err(err).Str("session_id", sessionID).Msg("session recheck failed")
				continue
			}
			if s.ExpiredAt(g.now()) {
				g.expire(sessionID, "recheck")
				return
			}
		}
	}
}

func (g *SessionGuard) expire(sessionID, trigger string) {
	g.mu.Lock()
	g.stopLocked(sessionID)
	metrics.SetActiveSessions(len(g.pairs))
	g.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		g.log.Warn().Err(err).Str("session_id", sessionID).Msg("session delete failed")
	}
	metrics.IncSessionExpired(trigger)
	g.log.Info().Str("session_id", sessionID).Str("trigger", trigger).Msg("session ended")
	if g.notifier != nil {
		g.notifier.SessionExpired(sessionID)
	}
}

func (g *SessionGuard) Cancel(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked(sessionID)
	metrics.SetActiveSessions(len(g.pairs))
}

// stopLocked tears a pair down; callers hold g.mu.
func (g *SessionGuard) stopLocked(sessionID string) {
	pair, ok := g.pairs[sessionID]
	if !ok {
		return
	}
	pair.warn.Stop()
	pair.expire.Stop()
	pair.recheck.Stop()
	close(pair.done)
	delete(g.pairs, sessionID)
}

// Shutdown cancels every live pair.
func (g *SessionGuard) Shutdown() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id := range g.pairs {
		g.stopLocked(id)
	}
	metrics.SetActiveSessions(0)
}

// Watching reports whether a pair is armed for the session.
func (g *SessionGuard) Watching(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.pairs[sessionID]
	return ok
}
