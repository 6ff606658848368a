package gov

import (
	"time"

	"github.com/baekya-protocol/baekya-protocol-sub000/types"
)

// CastVote records one member's vote. Double counting is guarded here; vote
// eligibility and token cost are the collaborator's concern and are settled
// before the command reaches the engine.
func (e *Engine) CastVote(proposalId, voterId string, choice types.VoteChoice) error {
	if !choice.Valid() {
		return ErrInvalidVoteChoice
	}
	return e.applyProposal(proposalId, func(p *types.Proposal) error {
		if _, voted := p.Voters[voterId]; voted {
			return ErrAlreadyVoted
		}
		if p.Status != types.ProposalStatusVoting {
			return ErrNotVotingStage
		}
		now := e.clock()
		if now.After(p.VotingEnd) {
			return ErrVotingExpired
		}
		if p.Voters == nil {
			p.Voters = make(map[string]types.VoteChoice)
		}
		p.Voters[voterId] = choice
		switch choice {
		case types.VoteChoiceFor:
			p.VotesFor += 1
		case types.VoteChoiceAgainst:
			p.VotesAgainst += 1
		case types.VoteChoiceAbstain:
			p.VotesAbstain += 1
		}
		e.queue(types.EncodeEventVote(&types.EventVote{
			ProposalId: p.Id,
			VoterId:    voterId,
			Choice:     choice,
			TotalVotes: p.TotalVotes(),
		}))
		dao, err := e.store.GetDAO(p.DAOId)
		if err != nil {
			return err
		}
		if err := e.transitionCheck(p, dao, now); err != nil {
			return err
		}
		return e.store.PutProposal(p)
	})
}

// transitionCheck is the single authoritative voting-stage transition rule,
// invoked from both the vote-cast path and the poller so the two can never
// disagree. An expired proposal below quorum fails; a proposal at quorum
// concludes immediately, possibly days before its nominal window ends.
func (e *Engine) transitionCheck(p *types.Proposal, dao *types.DAO, now time.Time) error {
	if p.Status != types.ProposalStatusVoting {
		return nil
	}
	members := len(dao.Members)
	if now.After(p.VotingEnd) && !QuorumReached(members, p) {
		p.Status = types.ProposalStatusFailed
		p.StatusReason = "quorum not met by deadline"
		p.ConcludedAt = now
		e.queueStatus(p)
		return e.resolveCollateral(p, false, now)
	}
	if !QuorumReached(members, p) {
		return nil
	}
	if !PassesApproval(p) {
		p.Status = types.ProposalStatusRejected
		p.StatusReason = "approval threshold not met"
		p.ConcludedAt = now
		e.queueStatus(p)
		return e.resolveCollateral(p, false, now)
	}
	if p.Kind == types.KindImpeachment {
		// Impeachment skips the review cascade and goes straight to
		// operator removal and succession.
		p.Status = types.ProposalStatusApproved
		p.StatusReason = "impeachment passed"
		p.ConcludedAt = now
		e.queueStatus(p)
		return e.impeach(p, dao, now)
	}
	p.Status = types.ProposalStatusDAOOpReview
	e.queueStatus(p)
	return nil
}

// Recheck re-applies the stage transition rules for one proposal. The poller
// calls this for every open proposal; it is the only place time-based expiry
// is detected without a triggering command.
func (e *Engine) Recheck(proposalId string) error {
	return e.applyProposal(proposalId, func(p *types.Proposal) error {
		now := e.clock()
		before := p.Status
		switch p.Status {
		case types.ProposalStatusVoting:
			dao, err := e.store.GetDAO(p.DAOId)
			if err != nil {
				return err
			}
			if err := e.transitionCheck(p, dao, now); err != nil {
				return err
			}
		case types.ProposalStatusOpsDAOObjection:
			if now.After(p.ObjectionDeadline) {
				p.Status = types.ProposalStatusTopOpFinal
				e.queueStatus(p)
			}
		default:
			return nil
		}
		if p.Status == before {
			return nil
		}
		return e.store.PutProposal(p)
	})
}
