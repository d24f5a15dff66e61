package history

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"walletlink/internal/domain"
)

// ErrNoStore indicates the service was built without a history store.
var ErrNoStore = errors.New("history store not configured")

// Summary aggregates the transaction history.
type Summary struct {
	Total         int           `json:"total"`
	Succeeded     int           `json:"succeeded"`
	Failed        int           `json:"failed"`
	SuccessRate   float64       `json:"success_rate"`
	TotalSOL      float64       `json:"total_sol"`
	TotalLamports uint64        `json:"total_lamports"`
	AvgDuration   time.Duration `json:"avg_duration"`
	Last          *time.Time    `json:"last,omitempty"`
}

// Service is the read side of the transaction history.
type Service struct {
	store domain.HistoryStore
}

// New constructs a history Service over store.
func New(store domain.HistoryStore) *Service {
	return &Service{store: store}
}

// List returns up to limit records, newest first. A limit of zero returns all.
func (s *Service) List(ctx context.Context, limit int) ([]domain.TransactionRecord, error) {
	if s == nil || s.store == nil {
		return nil, ErrNoStore
	}
	recs, err := s.store.ListTransactions(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list transactions")
	}
	return recs, nil
}

// Summary aggregates every record in the store.
//
// Only successful transfers count towards the SOL total and the average
// duration; failed ones never moved funds and their duration is the time to
// rejection or timeout.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	recs, err := s.List(ctx, 0)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(recs), nil
}

// Summarize aggregates recs.
func Summarize(recs []domain.TransactionRecord) Summary {
	var (
		sum     Summary
		elapsed time.Duration
	)
	for i := range recs {
		rec := recs[i]
		sum.Total++
		if rec.Timestamp.After(timeOrZero(sum.Last)) {
			ts := rec.Timestamp
			sum.Last = &ts
		}
		if !rec.Success {
			sum.Failed++
			continue
		}
		sum.Succeeded++
		sum.TotalLamports += rec.Lamports
		elapsed += rec.Duration
	}
	if sum.Total > 0 {
		sum.SuccessRate = float64(sum.Succeeded) / float64(sum.Total)
	}
	if sum.Succeeded > 0 {
		sum.AvgDuration = elapsed / time.Duration(sum.Succeeded)
	}
	sum.TotalSOL = domain.TransactionRecord{Lamports: sum.TotalLamports}.SOL()
	return sum
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
