package model

import "time"

// VisitorState is what the service persists per visitor: the country detected
// once per session, the selection driving all content filtering, and whether
// the one-shot mismatch alert has been dismissed.
//
// Invariant: Selected is always a registry member. Detected may be an ad-hoc
// country outside the registry.
type VisitorState struct {
	VisitorID      string    `json:"visitorId"`
	Detected       Country   `json:"detected"`
	Selected       Country   `json:"selected"`
	Supported      bool      `json:"supported"`
	AlertDismissed bool      `json:"alertDismissed"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PrivacyAcceptance maps country code -> accepted. Mutated only by explicit
// accept actions; rejection never writes an entry.
type PrivacyAcceptance struct {
	VisitorID string          `json:"visitorId"`
	Accepted  map[string]bool `json:"accepted"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewPrivacyAcceptance(visitorID string) *PrivacyAcceptance {
	return &PrivacyAcceptance{
		VisitorID: visitorID,
		Accepted:  make(map[string]bool),
		UpdatedAt: time.Now(),
	}
}

func (p *PrivacyAcceptance) HasAccepted(code string) bool {
	return p.Accepted[code]
}

func (p *PrivacyAcceptance) Accept(code string) {
	if p.Accepted == nil {
		p.Accepted = make(map[string]bool)
	}
	p.Accepted[code] = true
	p.UpdatedAt = time.Now()
}
