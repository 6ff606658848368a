package state

import (
	"fmt"
	"sort"
	"time"

	"github.com/baekya-protocol/baekya-protocol-sub000/types"
)

// Account is one member's P-token position. Balance is the spendable amount;
// Locked holds proposal collateral until it resolves.
type Account struct {
	MemberId     string    `json:"member_id"`
	Balance      uint64    `json:"balance"`
	Locked       uint64    `json:"locked"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (a *Account) Clone() *Account {
	n := *a
	return &n
}

func (s *Store) GetAccount(memberId string) (acnt *Account, err error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	acnt = new(Account)
	if err = s.get(fmt.Sprintf(KeyAccount, memberId), acnt); err != nil {
		if err == ErrNotFound {
			err = ErrAccountNoexists
		}
		return nil, err
	}
	return
}

func (s *Store) PutAccount(acnt *Account) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.put(fmt.Sprintf(KeyAccount, acnt.MemberId), acnt)
}

// getOrCreate registers an account on first sight so that balance grants and
// membership do not need a separate signup step.
func (s *Store) getOrCreateAccount(memberId string, now time.Time) (acnt *Account, err error) {
	acnt, err = s.GetAccount(memberId)
	if err == ErrAccountNoexists {
		acnt = &Account{MemberId: memberId, RegisteredAt: now}
		err = nil
	}
	return
}

func (s *Store) AddBalance(memberId string, amount uint64, now time.Time) error {
	acnt, err := s.getOrCreateAccount(memberId, now)
	if err != nil {
		return err
	}
	acnt.Balance += amount
	return s.PutAccount(acnt)
}

// LockBalance moves amount from spendable into locked; the caller owns the
// matching collateral record.
func (s *Store) LockBalance(memberId string, amount uint64) error {
	acnt, err := s.GetAccount(memberId)
	if err != nil {
		if err == ErrAccountNoexists {
			return ErrInsufficientBalance
		}
		return err
	}
	if acnt.Balance < amount {
		return ErrInsufficientBalance
	}
	acnt.Balance -= amount
	acnt.Locked += amount
	return s.PutAccount(acnt)
}

// ReleaseLocked resolves a locked position: refund goes back to the
// spendable balance, burn leaves circulation. refund+burn must not exceed
// the member's locked amount.
func (s *Store) ReleaseLocked(memberId string, refund, burn uint64) error {
	acnt, err := s.GetAccount(memberId)
	if err != nil {
		return err
	}
	total := refund + burn
	if acnt.Locked < total {
		return ErrInsufficientBalance
	}
	acnt.Locked -= total
	acnt.Balance += refund
	return s.PutAccount(acnt)
}

// BurnAll zeroes the member's spendable balance and returns the amount
// burned. Used once at impeachment-pass time.
func (s *Store) BurnAll(memberId string) (burned uint64, err error) {
	acnt, err := s.GetAccount(memberId)
	if err != nil {
		if err == ErrAccountNoexists {
			return 0, nil
		}
		return 0, err
	}
	burned = acnt.Balance
	acnt.Balance = 0
	err = s.PutAccount(acnt)
	return
}

// RankHolders orders the DAO's members by descending balance for the
// succession cascade. Ties break by earliest registration, then member id,
// so the order is a deterministic total order. Members without tokens and
// the excluded member are skipped.
func (s *Store) RankHolders(dao *types.DAO, exclude string) (holders []types.TokenHolder, err error) {
	for _, m := range dao.Members {
		if m == exclude {
			continue
		}
		acnt, err := s.GetAccount(m)
		if err != nil {
			if err == ErrAccountNoexists {
				continue
			}
			return nil, err
		}
		if acnt.Balance == 0 {
			continue
		}
		holders = append(holders, types.TokenHolder{
			MemberId:     acnt.MemberId,
			TokenBalance: acnt.Balance,
			RegisteredAt: acnt.RegisteredAt,
		})
	}
	sort.SliceStable(holders, func(i, j int) bool {
		if holders[i].TokenBalance != holders[j].TokenBalance {
			return holders[i].TokenBalance > holders[j].TokenBalance
		}
		if !holders[i].RegisteredAt.Equal(holders[j].RegisteredAt) {
			return holders[i].RegisteredAt.Before(holders[j].RegisteredAt)
		}
		return holders[i].MemberId < holders[j].MemberId
	})
	for i := range holders {
		holders[i].Rank = i
	}
	return
}
