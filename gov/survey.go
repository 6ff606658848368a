package gov

import "github.com/baekya-protocol/baekya-protocol-sub000/types"

// A support rate at or below this share of the decisive responses turns the
// survey conclusion into an impeachment proposal.
const surveyImpeachPct = 40

// ConductSurvey opens a confidence survey on the DAO's current operator. Any
// member may start one.
func (e *Engine) ConductSurvey(daoId, initiatorId string) (sv *types.Survey, err error) {
	unlock := e.lock("dao/" + daoId)
	defer unlock()
	err = e.apply(func() error {
		dao, err := e.store.GetDAO(daoId)
		if err != nil {
			return err
		}
		if !dao.HasMember(initiatorId) {
			return ErrNotMember
		}
		if dao.OperatorId == "" {
			return ErrWrongStage
		}
		sv = &types.Survey{
			Id:         e.newId(),
			DAOId:      daoId,
			OperatorId: dao.OperatorId,
			CreatedBy:  initiatorId,
			Status:     types.SurveyActive,
			Voters:     make(map[string]string),
			CreatedAt:  e.clock(),
		}
		return e.store.PutSurvey(sv)
	})
	if err != nil {
		return nil, err
	}
	return sv, nil
}

// VoteSurvey records one member's confidence response.
func (e *Engine) VoteSurvey(surveyId, voterId, vote string) error {
	unlock := e.lock("survey/" + surveyId)
	defer unlock()
	return e.apply(func() error {
		sv, err := e.store.GetSurvey(surveyId)
		if err != nil {
			return err
		}
		dao, err := e.store.GetDAO(sv.DAOId)
		if err != nil {
			return err
		}
		if !dao.HasMember(voterId) {
			return ErrNotMember
		}
		if sv.Status != types.SurveyActive {
			return ErrSurveyConcluded
		}
		if _, voted := sv.Voters[voterId]; voted {
			return ErrAlreadyVoted
		}
		switch vote {
		case types.SurveyVoteSupport:
			sv.Support += 1
		case types.SurveyVoteNeutral:
			sv.Neutral += 1
		case types.SurveyVoteOppose:
			sv.Oppose += 1
		default:
			return ErrInvalidSurveyVote
		}
		if sv.Voters == nil {
			sv.Voters = make(map[string]string)
		}
		sv.Voters[voterId] = vote
		return e.store.PutSurvey(sv)
	})
}

// ConcludeSurvey closes the survey. A support rate at or below the impeach
// line, measured over the decisive (non-neutral) responses, auto-files an
// impeachment proposal that enters Voting directly; funding is considered
// settled by the survey itself.
func (e *Engine) ConcludeSurvey(surveyId string) (impeachment *types.Proposal, err error) {
	unlock := e.lock("survey/" + surveyId)
	defer unlock()
	err = e.apply(func() error {
		sv, err := e.store.GetSurvey(surveyId)
		if err != nil {
			return err
		}
		if sv.Status != types.SurveyActive {
			return ErrSurveyConcluded
		}
		now := e.clock()
		sv.Status = types.SurveyConcluded
		sv.ConcludedAt = now
		if err = e.store.PutSurvey(sv); err != nil {
			return err
		}
		decisive := sv.Support + sv.Oppose
		if decisive == 0 || sv.Support*100 > surveyImpeachPct*decisive {
			return nil
		}
		dao, err := e.store.GetDAO(sv.DAOId)
		if err != nil {
			return err
		}
		if dao.OperatorId != sv.OperatorId {
			// Operator changed while the survey ran; the result is stale.
			return nil
		}
		impeachment = &types.Proposal{
			Id:             e.newId(),
			DAOId:          sv.DAOId,
			Kind:           types.KindImpeachment,
			Status:         types.ProposalStatusVoting,
			Proposer:       sv.CreatedBy,
			Title:          "operator impeachment",
			Description:    "confidence survey " + sv.Id + " fell below the support line",
			Voters:         make(map[string]types.VoteChoice),
			QuorumPct:      e.cfg.QuorumPctFor(true),
			ThresholdPct:   e.cfg.ApprovalPctFor(true),
			VotingStart:    now,
			VotingEnd:      now.Add(e.cfg.VotingPeriod),
			TargetOperator: sv.OperatorId,
			CreatedAt:      now,
		}
		if err = e.store.PutProposal(impeachment); err != nil {
			return err
		}
		e.queueStatus(impeachment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return impeachment, nil
}
