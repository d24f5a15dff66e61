package session

import (
	"time"

	"walletlink/internal/domain"
)

// Snapshot is an immutable view of the machine for rendering.
type Snapshot struct {
	State       domain.State            `json:"state"`
	Method      domain.ConnectionMethod `json:"method,omitempty"`
	Wallet      *domain.WalletIdentity  `json:"wallet,omitempty"`
	Cluster     domain.Cluster          `json:"cluster"`
	ConnectedAt time.Time               `json:"connected_at,omitempty"`
	Pending     *PendingView            `json:"pending,omitempty"`
	LastError   string                  `json:"last_error,omitempty"`
}

// PendingView describes the outstanding wallet request, without key material.
type PendingView struct {
	ID        domain.CorrelationID `json:"id"`
	Action    domain.Action        `json:"action"`
	StartedAt time.Time            `json:"started_at"`
	Deadline  time.Time            `json:"deadline"`
}

func (s *Service) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.stateLocked(), Cluster: s.opts.Cluster}
	if s.session != nil {
		w := s.session.Wallet
		snap.Wallet = &w
		snap.Method = s.session.Method
		snap.ConnectedAt = time.Unix(s.session.ConnectedUTC, 0).UTC()
	}
	if p := s.pending; p != nil {
		snap.Pending = &PendingView{
			ID:        p.ID,
			Action:    p.Action,
			StartedAt: p.StartedAt,
			Deadline:  p.StartedAt.Add(s.opts.ResponseTimeout),
		}
	}
	if s.lastErr != nil {
		snap.LastError = domain.UserMessage(s.lastAction, s.lastErr)
	}
	return snap
}
