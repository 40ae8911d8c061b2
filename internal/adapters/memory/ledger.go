package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viralforge/adforge/internal/domain"
)

var errArchiveUnavailable = errors.New("archive store unavailable")

func nowUTC() time.Time { return time.Now().UTC() }

// CreditLedger is the in-process stand-in for the redis ledger. Balance
// checks and reservations share one mutex so a reservation can never
// overdraw against a concurrent reader.
type CreditLedger struct {
	mu       sync.Mutex
	balances map[string]float64
}

func NewCreditLedger() *CreditLedger {
	return &CreditLedger{balances: map[string]float64{}}
}

func (l *CreditLedger) Grant(ownerID string, amount float64) {
	l.mu.Lock()
	l.balances[ownerID] += amount
	l.mu.Unlock()
}

func (l *CreditLedger) Balance(_ context.Context, ownerID string) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[ownerID], nil
}

func (l *CreditLedger) CheckAndReserve(_ context.Context, ownerID string, amount float64) error {
	if amount < 0 {
		return domain.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	available := l.balances[ownerID]
	if available < amount {
		return &domain.InsufficientCreditsError{Required: amount, Available: available}
	}
	l.balances[ownerID] = available - amount
	return nil
}

func (l *CreditLedger) Release(_ context.Context, ownerID string, amount float64) error {
	if amount < 0 {
		return domain.ErrInvalidInput
	}
	l.mu.Lock()
	l.balances[ownerID] += amount
	l.mu.Unlock()
	return nil
}
