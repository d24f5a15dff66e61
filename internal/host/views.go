package host

import (
	"time"

	"walletlink/internal/domain"
	"walletlink/internal/services/history"
	"walletlink/internal/services/session"
)

type linkView struct {
	Action        domain.Action        `json:"action"`
	URL           string               `json:"url"`
	CorrelationID domain.CorrelationID `json:"correlation_id,omitempty"`
	State         domain.State         `json:"state"`
}

type transitionView struct {
	From          domain.State              `json:"from"`
	To            domain.State              `json:"to"`
	Action        domain.Action             `json:"action,omitempty"`
	CorrelationID domain.CorrelationID      `json:"correlation_id,omitempty"`
	Wallet        *domain.WalletIdentity    `json:"wallet,omitempty"`
	Record        *domain.TransactionRecord `json:"record,omitempty"`
	Kind          string                    `json:"kind,omitempty"`
	Error         string                    `json:"error,omitempty"`
	At            time.Time                 `json:"at"`
}

func newTransitionView(t domain.Transition) *transitionView {
	v := &transitionView{
		From:          t.From,
		To:            t.To,
		Action:        t.Action,
		CorrelationID: t.CorrelationID,
		Wallet:        t.Wallet,
		Record:        t.Record,
		At:            t.At,
	}
	if t.Err != nil {
		v.Kind = domain.KindOf(t.Err).String()
		v.Error = domain.UserMessage(t.Action, t.Err)
	}
	return v
}

type callbackView struct {
	Handled    bool             `json:"handled"`
	Duplicate  bool             `json:"duplicate,omitempty"`
	Transition *transitionView  `json:"transition,omitempty"`
	Status     session.Snapshot `json:"status"`
}

type historyView struct {
	Summary      history.Summary            `json:"summary"`
	Transactions []domain.TransactionRecord `json:"transactions"`
}

type errorView struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
