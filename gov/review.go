package gov

import (
	"time"

	"github.com/baekya-protocol/baekya-protocol-sub000/state"
	"github.com/baekya-protocol/baekya-protocol-sub000/types"
)

// RecordOPDecision is the first review tier. Only the operator of the
// proposal's own DAO may decide; a rejection here is terminal and skips the
// remaining tiers.
func (e *Engine) RecordOPDecision(proposalId, reviewerId string, decision types.Decision, comment string) error {
	return e.applyProposal(proposalId, func(p *types.Proposal) error {
		dao, err := e.store.GetDAO(p.DAOId)
		if err != nil {
			return err
		}
		if dao.OperatorId != reviewerId {
			return ErrNotAuthorized
		}
		if p.Status != types.ProposalStatusDAOOpReview {
			return ErrWrongStage
		}
		now := e.clock()
		p.OpReviewer = reviewerId
		p.OpReviewComment = comment
		p.OpDecidedAt = now
		switch decision {
		case types.DecisionApprove:
			p.OpDecision = types.OpDecisionApproved
			p.Status = types.ProposalStatusOpsDAOObjection
			p.ObjectionDeadline = now.Add(e.cfg.ObjectionWindow)
			e.queueStatus(p)
		case types.DecisionReject:
			p.OpDecision = types.OpDecisionRejected
			p.Status = types.ProposalStatusRejected
			p.StatusReason = "rejected by dao operator"
			p.ConcludedAt = now
			e.queueStatus(p)
			if err = e.resolveCollateral(p, false, now); err != nil {
				return err
			}
		default:
			return ErrInvalidProposal
		}
		return e.store.PutProposal(p)
	})
}

// SubmitObjection files an objection during the objection window. Any member
// holding an operator role network-wide may object; there is no cap on the
// number of objections. The stage itself is advanced by the poller or the
// first FinalDecide call, never here.
func (e *Engine) SubmitObjection(proposalId, objectorId, reason, details string) (objectionId string, err error) {
	err = e.applyProposal(proposalId, func(p *types.Proposal) error {
		role, ok, err := e.operatorRole(objectorId)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotAuthorized
		}
		switch p.Status {
		case types.ProposalStatusOpsDAOObjection:
		case types.ProposalStatusTopOpFinal:
			return ErrWindowClosed
		default:
			return ErrWrongStage
		}
		now := e.clock()
		if now.After(p.ObjectionDeadline) {
			return ErrWindowClosed
		}
		objectionId = e.newId()
		p.Objections = append(p.Objections, types.Objection{
			Id:           objectionId,
			ProposalId:   p.Id,
			ObjectorId:   objectorId,
			ObjectorRole: role,
			Reason:       reason,
			Details:      details,
			SubmittedAt:  now,
		})
		e.queue(types.EncodeEventObjection(&types.EventObjection{
			ProposalId:  p.Id,
			ObjectionId: objectionId,
			ObjectorId:  objectorId,
			Reason:      reason,
		}))
		return e.store.PutProposal(p)
	})
	if err != nil {
		return "", err
	}
	return objectionId, nil
}

// FinalDecide is the top operator's terminal call. An expired objection
// window is closed here if the poller has not advanced the stage yet. On
// rejection every adopted objection earns its objector a fixed contribution
// credit; the adopted-id list is validated as a whole before anything is
// applied, so an unknown id adopts nothing.
func (e *Engine) FinalDecide(proposalId, reviewerId string, decision types.Decision, reason string, adoptedObjectionIds []string) error {
	return e.applyProposal(proposalId, func(p *types.Proposal) error {
		top, err := e.HasCapability(reviewerId, "", CapTopOperator)
		if err != nil {
			return err
		}
		if !top {
			return ErrNotAuthorized
		}
		now := e.clock()
		if p.Status == types.ProposalStatusOpsDAOObjection && now.After(p.ObjectionDeadline) {
			p.Status = types.ProposalStatusTopOpFinal
			e.queueStatus(p)
		}
		if p.Status != types.ProposalStatusTopOpFinal {
			return ErrWrongStage
		}
		adopted, err := e.adoptableObjections(p, adoptedObjectionIds)
		if err != nil {
			return err
		}
		switch decision {
		case types.DecisionApprove:
			p.Status = types.ProposalStatusApproved
			p.ConcludedAt = now
			e.queueStatus(p)
			if p.Kind == types.KindDAOCreation {
				if err = e.materializeDAO(p, now); err != nil {
					return err
				}
			}
		case types.DecisionReject:
			p.Status = types.ProposalStatusRejected
			p.StatusReason = "rejected by top operator"
			p.ConcludedAt = now
			e.queueStatus(p)
			for _, idx := range adopted {
				p.Objections[idx].Adopted = true
				if err = e.issueObjectionCredit(p, &p.Objections[idx], now); err != nil {
					return err
				}
			}
			if err = e.resolveCollateral(p, false, now); err != nil {
				return err
			}
		default:
			return ErrInvalidProposal
		}
		p.FinalDecision = &types.FinalDecision{
			ProposalId:          p.Id,
			Decision:            decision,
			Reason:              reason,
			AdoptedObjectionIds: adoptedObjectionIds,
			Reviewer:            reviewerId,
			DecidedAt:           now,
		}
		e.queue(types.EncodeEventFinalDecision(&types.EventFinalDecision{
			ProposalId: p.Id,
			Decision:   decision,
			Reviewer:   reviewerId,
			Adopted:    uint64(len(adopted)),
		}))
		return e.store.PutProposal(p)
	})
}

// adoptableObjections resolves ids to objection indices. Every id must match
// an existing, not-yet-adopted objection on this proposal and appear once;
// otherwise the whole list is refused.
func (e *Engine) adoptableObjections(p *types.Proposal, ids []string) (indices []int, err error) {
	byId := make(map[string]int, len(p.Objections))
	for i, o := range p.Objections {
		byId[o.Id] = i
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		idx, ok := byId[id]
		if !ok || seen[id] || p.Objections[idx].Adopted {
			return nil, ErrUnknownObjection
		}
		seen[id] = true
		indices = append(indices, idx)
	}
	return
}

func (e *Engine) issueObjectionCredit(p *types.Proposal, o *types.Objection, now time.Time) error {
	credit := &types.ContributionCredit{
		MemberId:   o.ObjectorId,
		DAOId:      p.DAOId,
		ProposalId: p.Id,
		Amount:     e.cfg.ObjectionReward,
		Reason:     "objection adopted",
		IssuedAt:   now,
	}
	if err := e.store.AppendCredit(credit); err != nil {
		return err
	}
	e.queue(types.EncodeEventCreditIssued(&types.EventCreditIssued{
		MemberId:   credit.MemberId,
		DAOId:      credit.DAOId,
		ProposalId: credit.ProposalId,
		Amount:     credit.Amount,
		Reason:     credit.Reason,
	}))
	return nil
}

// materializeDAO creates the approved DAO and installs the initial operator
// with the converted collateral as the opening P-token pool.
func (e *Engine) materializeDAO(p *types.Proposal, now time.Time) error {
	if _, err := e.store.FindDAOByName(p.ProposedDAOName); err == nil {
		return state.ErrDAOAlreadyExists
	} else if err != state.ErrDAONoexists {
		return err
	}
	dao := &types.DAO{
		Id:          e.newId(),
		Name:        p.ProposedDAOName,
		FounderId:   p.Proposer,
		OperatorId:  p.InitialOPCandidate,
		Members:     []string{p.InitialOPCandidate},
		DCAs:        p.ProposedDCAs,
		CreatedAt:   now,
		Description: p.Description,
	}
	if err := e.store.PutDAO(dao); err != nil {
		return err
	}
	return e.resolveCollateral(p, true, now)
}
