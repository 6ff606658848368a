package gov

import (
	"time"

	"github.com/baekya-protocol/baekya-protocol-sub000/types"
)

// lockCollateral moves the DAO-creation deposit out of the proposer's
// spendable balance when the proposal is submitted.
func (e *Engine) lockCollateral(p *types.Proposal, now time.Time) error {
	if err := e.store.LockBalance(p.Proposer, p.CollateralAmount); err != nil {
		return err
	}
	return e.store.PutCollateral(&types.CollateralRecord{
		ProposalId:   p.Id,
		Proposer:     p.Proposer,
		AmountLocked: p.CollateralAmount,
		State:        types.CollateralLocked,
		LockedAt:     now,
	})
}

// resolveCollateral settles a DAO-creation deposit exactly once. Approval
// converts the full amount into the new DAO's pool, credited to the initial
// operator candidate. Any rejection or failure refunds floor(amount/2) and
// burns the rest; the penalty never rounds in the proposer's favor.
func (e *Engine) resolveCollateral(p *types.Proposal, approved bool, now time.Time) error {
	if p.Kind != types.KindDAOCreation {
		return nil
	}
	c, err := e.store.GetCollateral(p.Id)
	if err != nil {
		return err
	}
	if c.State != types.CollateralLocked {
		return ErrAlreadyResolved
	}
	if approved {
		if err = e.store.ReleaseLocked(c.Proposer, 0, c.AmountLocked); err != nil {
			return err
		}
		if err = e.store.AddBalance(p.InitialOPCandidate, c.AmountLocked, now); err != nil {
			return err
		}
		c.State = types.CollateralConverted
	} else {
		refund := c.AmountLocked / 2
		burn := c.AmountLocked - refund
		if err = e.store.ReleaseLocked(c.Proposer, refund, burn); err != nil {
			return err
		}
		c.State = types.CollateralPartiallyRefunded
		c.Refunded = refund
		c.Burned = burn
	}
	c.ResolvedAt = now
	if err = e.store.PutCollateral(c); err != nil {
		return err
	}
	e.queue(types.EncodeEventCollateralResolved(&types.EventCollateralResolved{
		ProposalId: c.ProposalId,
		State:      c.State,
		Refunded:   c.Refunded,
		Burned:     c.Burned,
	}))
	return nil
}

// ResolveCollateral is the explicit settlement command for the rare case
// where the collaborator decides a deposit outside the normal terminal
// transitions. A second settlement attempt fails with AlreadyResolved and
// moves no balance.
func (e *Engine) ResolveCollateral(proposalId string, decision types.Decision) error {
	return e.applyProposal(proposalId, func(p *types.Proposal) error {
		return e.resolveCollateral(p, decision == types.DecisionApprove, e.clock())
	})
}
