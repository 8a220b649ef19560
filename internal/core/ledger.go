package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ahmed2844ah-star/bokogaming/internal/domain"
)

var (
	// ErrTransactionNotFound is returned for an unknown transaction id.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrTerminalStatus is returned when a completed or rejected
	// transaction is asked to transition again.
	ErrTerminalStatus = errors.New("transaction already in a terminal status")
	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid transaction status")
	// ErrBonusClaimed is returned on a repeat first-bonus claim.
	ErrBonusClaimed = errors.New("first bonus already claimed")
	// ErrNoSession is returned when an operation names a user other
	// than the active session user, or there is no session at all.
	ErrNoSession = errors.New("no active session for this user")
	// ErrInsufficientFunds is returned by the conditional debit when
	// combined real and bonus funds do not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ApplyDelta applies a signed amount to the active session user's split
// balance. Credits go to the real balance in full; debits consume the
// bonus balance first and take any remainder from the real balance,
// with no floor. Overdraft prevention belongs to the caller's bet
// validation, not here. The updated record is written to the roster and
// mirrored before the mutex is released.
//
// Acting on a user other than the active session user, or with no
// session at all, is a no-op reported by the false return.
func (s *State) ApplyDelta(userID string, amount float64) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyDelta(userID, amount)
}

// applyDelta does the balance math. Callers hold the mutex.
func (s *State) applyDelta(userID string, amount float64) (domain.User, bool) {
	if s.currentID == "" || userID != s.currentID {
		return domain.User{}, false
	}
	for i := range s.users {
		if s.users[i].ID != userID {
			continue
		}
		u := &s.users[i]
		if amount >= 0 {
			u.Balance += amount
		} else {
			debit := -amount
			consumed := debit
			if consumed > u.BonusBalance {
				consumed = u.BonusBalance
			}
			u.BonusBalance -= consumed
			u.Balance -= debit - consumed
		}
		s.persistRoster()
		s.log.WithFields(logrus.Fields{
			"user_id":       userID,
			"amount":        amount,
			"balance":       u.Balance,
			"bonus_balance": u.BonusBalance,
		}).Info("Balance adjusted")
		return *u, true
	}
	return domain.User{}, false
}

// DebitIfCovered debits the active session user only when the combined
// real and bonus funds cover the amount, atomically with the check, so
// concurrent callers cannot both pass a stale funds check. The debit
// itself follows the usual bonus-first order. amount must be positive.
func (s *State) DebitIfCovered(userID string, amount float64) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == "" || userID != s.currentID {
		return domain.User{}, ErrNoSession
	}
	u, ok := s.lookup(userID)
	if !ok {
		return domain.User{}, ErrNoSession
	}
	if u.Balance+u.BonusBalance < amount {
		return domain.User{}, ErrInsufficientFunds
	}
	out, _ := s.applyDelta(userID, -amount)
	return out, nil
}

// TransactionFields are the caller-supplied parts of a new transaction.
type TransactionFields struct {
	UserID      string
	Username    string
	Amount      float64
	Kind        string
	Status      string // pending for wallet requests, completed for instant settlements
	Destination string
}

// CreateTransaction appends a transaction to the ledger and returns it
// with identity and timestamp assigned. The ledger is newest first and
// append-only; entries are never deleted.
func (s *State) CreateTransaction(f TransactionFields) domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendTransaction(f)
}

// appendTransaction records a transaction. Callers hold the mutex.
func (s *State) appendTransaction(f TransactionFields) domain.Transaction {
	status := f.Status
	if status == "" {
		status = domain.StatusPending
	}
	t := domain.Transaction{
		ID:          uuid.NewString(),
		UserID:      f.UserID,
		Username:    f.Username,
		Amount:      f.Amount,
		Kind:        f.Kind,
		Status:      status,
		CreatedAt:   time.Now(),
		Destination: f.Destination,
	}
	s.transactions = append([]domain.Transaction{t}, s.transactions...)
	s.log.WithFields(logrus.Fields{
		"transaction_id": t.ID,
		"user_id":        t.UserID,
		"amount":         t.Amount,
		"type":           t.Kind,
		"status":         t.Status,
	}).Info("Transaction recorded")
	return t
}

// SetStatus moves a pending transaction to completed or rejected.
// Repeating the status a transaction already holds is an idempotent
// success; any other transition out of a terminal status is rejected
// with ErrTerminalStatus to keep the ledger an honest audit trail.
func (s *State) SetStatus(txID, status string) error {
	if !domain.ValidStatus(status) {
		return ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		t := &s.transactions[i]
		if t.ID != txID {
			continue
		}
		if t.Status == status {
			return nil
		}
		if t.Status != domain.StatusPending {
			return ErrTerminalStatus
		}
		t.Status = status
		s.log.WithFields(logrus.Fields{
			"transaction_id": txID,
			"status":         status,
		}).Info("Transaction status updated")
		return nil
	}
	return ErrTransactionNotFound
}

// Transactions returns the full ledger, newest first.
func (s *State) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// TransactionsFor returns one user's ledger entries, newest first.
func (s *State) TransactionsFor(userID string) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// ClaimFirstBonus credits the one-time welcome bonus, marks the claim
// flag and records a completed bonus_credit settlement. Like ApplyDelta
// it only acts for the active session user: a claim naming anyone else
// fails with ErrNoSession, and a repeat claim with ErrBonusClaimed.
func (s *State) ClaimFirstBonus(userID string, amount float64) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == "" || userID != s.currentID {
		return domain.User{}, ErrNoSession
	}
	for i := range s.users {
		if s.users[i].ID != s.currentID {
			continue
		}
		u := &s.users[i]
		if u.HasClaimedFirstBonus {
			return domain.User{}, ErrBonusClaimed
		}
		u.BonusBalance += amount
		u.HasClaimedFirstBonus = true
		s.persistRoster()
		s.appendTransaction(TransactionFields{
			UserID:   u.ID,
			Username: u.Username,
			Amount:   amount,
			Kind:     domain.KindBonusCredit,
			Status:   domain.StatusCompleted,
		})
		return *u, nil
	}
	return domain.User{}, ErrNoSession
}
