package web

import (
	"sync"
	"time"

	"universidad-sunshine/internal/infra/i18n"
	"universidad-sunshine/internal/infra/sched"
)

var _ sched.Notifier = (*NoticeHub)(nil)

type NoticeKind string

const (
	NoticeExpiringSoon NoticeKind = "expiring_soon"
	NoticeExpired      NoticeKind = "expired"
)

type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	ExpiresAt time.Time  `json:"expiresAt,omitempty"`
	IssuedAt  time.Time  `json:"issuedAt"`
}

// NoticeHub buffers session guard notices until the client polls them,
// rendered with the portal's locale strings. An expired notice supersedes
// anything queued before it.
type NoticeHub struct {
	tr      *i18n.Translator
	mu      sync.Mutex
	pending map[string][]Notice
}

func NewNoticeHub(tr *i18n.Translator) *NoticeHub {
	return &NoticeHub{tr: tr, pending: make(map[string][]Notice)}
}

func (h *NoticeHub) SessionExpiring(sessionID string, expiresAt time.Time) {
	secs := int(time.Until(expiresAt).Seconds())
	if secs < 0 {
		secs = 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending[sessionID] = append(h.pending[sessionID], Notice{
		Kind:      NoticeExpiringSoon,
		Message:   h.tr.T("session_expiring_soon", secs),
		ExpiresAt: expiresAt,
		IssuedAt:  time.Now(),
	})
}

func (h *NoticeHub) SessionExpired(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending[sessionID] = []Notice{h.expiredNotice()}
}

func (h *NoticeHub) expiredNotice() Notice {
	return Notice{Kind: NoticeExpired, Message: h.tr.T("session_expired"), IssuedAt: time.Now()}
}

// Drain returns and clears the pending notices for a session.
func (h *NoticeHub) Drain(sessionID string) []Notice {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.pending[sessionID]
	delete(h.pending, sessionID)
	return out
}

// Drop discards a session's queue without delivering it.
func (h *NoticeHub) Drop(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.pending, sessionID)
}
