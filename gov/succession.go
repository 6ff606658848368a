package gov

import (
	"time"

	"github.com/baekya-protocol/baekya-protocol-sub000/state"
	"github.com/baekya-protocol/baekya-protocol-sub000/types"
)

// offerTimer wraps the acceptance-window timer for one DAO's pending offer.
// rank pins the offer the timer belongs to; a late fire against a newer
// offer is a no-op.
type offerTimer struct {
	rank  int
	timer *time.Timer
}

// impeach removes the operator and starts the succession cascade. The
// impeached operator's entire P-token balance is burned exactly once, here,
// independent of how succession later resolves.
func (e *Engine) impeach(p *types.Proposal, dao *types.DAO, now time.Time) error {
	burned, err := e.store.BurnAll(p.TargetOperator)
	if err != nil {
		return err
	}
	e.logger.Info("operator impeached", "dao", dao.Id, "operator", p.TargetOperator, "burned", burned)
	dao.OperatorId = ""
	if err = e.store.PutDAO(dao); err != nil {
		return err
	}
	holders, err := e.store.RankHolders(dao, p.TargetOperator)
	if err != nil {
		return err
	}
	su := &types.Succession{
		DAOId:             dao.Id,
		ProposalId:        p.Id,
		ImpeachedOperator: p.TargetOperator,
		Holders:           holders,
		Status:            types.SuccessionPending,
		StartedAt:         now,
	}
	e.advanceOffer(su, now)
	return e.store.PutSuccession(su)
}

// advanceOffer points the cascade at holders[rank], or terminates it when the
// list is exhausted. Timer arms and cancels run only after the surrounding
// command commits.
func (e *Engine) advanceOffer(su *types.Succession, now time.Time) {
	daoId := su.DAOId
	if su.Rank >= len(su.Holders) {
		su.Status = types.SuccessionNoSuccessor
		su.OfferedTo = ""
		su.ResolvedAt = now
		e.queue(types.EncodeEventSuccessionResolved(&types.EventSuccessionResolved{
			DAOId:  daoId,
			Status: su.Status,
		}))
		e.deferAfterCommit(func() { e.cancelOfferTimer(daoId) })
		return
	}
	h := su.Holders[su.Rank]
	su.OfferedTo = h.MemberId
	su.OfferExpiry = now.Add(e.cfg.SuccessionWindow)
	e.queue(types.EncodeEventSuccessionOffer(&types.EventSuccessionOffer{
		DAOId:    daoId,
		MemberId: h.MemberId,
		Rank:     su.Rank,
		ExpireAt: su.OfferExpiry,
	}))
	rank, expiry := su.Rank, su.OfferExpiry
	e.deferAfterCommit(func() { e.armOfferTimer(daoId, rank, expiry) })
}

func (e *Engine) armOfferTimer(daoId string, rank int, expiry time.Time) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	if ot, ok := e.offerTimers[daoId]; ok {
		ot.timer.Stop()
	}
	d := expiry.Sub(e.clock())
	e.offerTimers[daoId] = &offerTimer{
		rank:  rank,
		timer: time.AfterFunc(d, func() { e.offerTimeout(daoId, rank) }),
	}
}

func (e *Engine) cancelOfferTimer(daoId string) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	if ot, ok := e.offerTimers[daoId]; ok {
		ot.timer.Stop()
		delete(e.offerTimers, daoId)
	}
}

// offerTimeout fires on natural expiry of an acceptance window. A timeout is
// treated exactly like an explicit rejection. The rank guard makes the
// handler idempotent: a response that landed concurrently with the fire has
// already moved the cascade on, and the late fire does nothing.
func (e *Engine) offerTimeout(daoId string, rank int) {
	unlock := e.lock("dao/" + daoId)
	defer unlock()
	err := e.apply(func() error {
		su, err := e.store.GetSuccession(daoId)
		if err != nil {
			return err
		}
		if su.Status != types.SuccessionPending || su.Rank != rank {
			return nil
		}
		now := e.clock()
		su.Rank += 1
		e.advanceOffer(su, now)
		return e.store.PutSuccession(su)
	})
	if err != nil {
		e.logger.Error("succession timeout handling fail", "dao", daoId, "rank", rank, "err", err)
	}
}

// RespondToSuccessionOffer applies the offered member's explicit accept or
// reject. Acceptance installs the member as operator and ends the cascade;
// rejection immediately re-offers to the next ranked holder.
func (e *Engine) RespondToSuccessionOffer(daoId, memberId string, accept bool) error {
	unlock := e.lock("dao/" + daoId)
	defer unlock()
	return e.apply(func() error {
		su, err := e.store.GetSuccession(daoId)
		if err != nil {
			if err == state.ErrSuccessionNoexists {
				return ErrNoActiveSuccession
			}
			return err
		}
		if su.Status != types.SuccessionPending {
			return ErrNoActiveSuccession
		}
		if su.OfferedTo != memberId {
			return ErrOfferNotPending
		}
		now := e.clock()
		if accept {
			su.Status = types.SuccessionInstalled
			su.NewOperator = memberId
			su.ResolvedAt = now
			dao, err := e.store.GetDAO(daoId)
			if err != nil {
				return err
			}
			dao.OperatorId = memberId
			if err = e.store.PutDAO(dao); err != nil {
				return err
			}
			e.queue(types.EncodeEventSuccessionResolved(&types.EventSuccessionResolved{
				DAOId:       daoId,
				Status:      su.Status,
				NewOperator: memberId,
			}))
			e.deferAfterCommit(func() { e.cancelOfferTimer(daoId) })
		} else {
			su.Rank += 1
			e.advanceOffer(su, now)
		}
		return e.store.PutSuccession(su)
	})
}

// ResumeSuccessions re-arms offer timers after a restart. An offer whose
// window already elapsed while the process was down times out immediately.
func (e *Engine) ResumeSuccessions() error {
	sus, err := e.store.ListSuccessions()
	if err != nil {
		return err
	}
	for _, su := range sus {
		if su.Status != types.SuccessionPending {
			continue
		}
		e.logger.Info("resume succession", "dao", su.DAOId, "rank", su.Rank, "offered", su.OfferedTo)
		e.armOfferTimer(su.DAOId, su.Rank, su.OfferExpiry)
	}
	return nil
}

// Close stops every pending offer timer.
func (e *Engine) Close() {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	for daoId, ot := range e.offerTimers {
		ot.timer.Stop()
		delete(e.offerTimers, daoId)
	}
}
