package gov

import (
	"testing"

	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	"github.com/stretchr/testify/require"
)

func TestConductSurveyGuards(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 5)

	_, err := e.ConductSurvey(dao.Id, "stranger")
	require.ErrorIs(t, err, ErrNotMember)

	sv, err := e.ConductSurvey(dao.Id, "m0001")
	require.NoError(t, err)
	require.Equal(t, types.SurveyActive, sv.Status)
	require.Equal(t, "top", sv.OperatorId)
	require.Equal(t, "m0001", sv.CreatedBy)
}

func TestConductSurveyNeedsOperator(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 5)
	dao.OperatorId = ""
	require.NoError(t, e.store.PutDAO(dao))
	_, err := e.store.Commit()
	require.NoError(t, err)

	_, err = e.ConductSurvey(dao.Id, "m0001")
	require.ErrorIs(t, err, ErrWrongStage)
}

func TestVoteSurveyTallyAndGuards(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 6)
	sv, err := e.ConductSurvey(dao.Id, "m0001")
	require.NoError(t, err)

	require.ErrorIs(t, e.VoteSurvey(sv.Id, "stranger", types.SurveyVoteSupport), ErrNotMember)
	require.ErrorIs(t, e.VoteSurvey(sv.Id, "m0001", "maybe"), ErrInvalidSurveyVote)

	require.NoError(t, e.VoteSurvey(sv.Id, "m0001", types.SurveyVoteSupport))
	require.NoError(t, e.VoteSurvey(sv.Id, "m0002", types.SurveyVoteNeutral))
	require.NoError(t, e.VoteSurvey(sv.Id, "m0003", types.SurveyVoteOppose))
	require.ErrorIs(t, e.VoteSurvey(sv.Id, "m0001", types.SurveyVoteOppose), ErrAlreadyVoted)

	got, err := e.store.GetSurvey(sv.Id)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.Support)
	require.EqualValues(t, 1, got.Neutral)
	require.EqualValues(t, 1, got.Oppose)
}

func TestConcludeSurveyBelowLineFilesImpeachment(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 10)
	sv, err := e.ConductSurvey(dao.Id, "m0001")
	require.NoError(t, err)

	// 2 support / 3 oppose: 40% of decisive, at the line so it triggers
	require.NoError(t, e.VoteSurvey(sv.Id, "m0001", types.SurveyVoteSupport))
	require.NoError(t, e.VoteSurvey(sv.Id, "m0002", types.SurveyVoteSupport))
	require.NoError(t, e.VoteSurvey(sv.Id, "m0003", types.SurveyVoteOppose))
	require.NoError(t, e.VoteSurvey(sv.Id, "m0004", types.SurveyVoteOppose))
	require.NoError(t, e.VoteSurvey(sv.Id, "m0005", types.SurveyVoteOppose))
	// neutral responses never count against the operator
	require.NoError(t, e.VoteSurvey(sv.Id, "m0006", types.SurveyVoteNeutral))

	imp, err := e.ConcludeSurvey(sv.Id)
	require.NoError(t, err)
	require.NotNil(t, imp)
	require.Equal(t, types.KindImpeachment, imp.Kind)
	require.Equal(t, types.ProposalStatusVoting, imp.Status)
	require.Equal(t, "top", imp.TargetOperator)
	require.Equal(t, "m0001", imp.Proposer)
	require.EqualValues(t, 60, imp.QuorumPct)
	require.EqualValues(t, 60, imp.ThresholdPct)

	// the auto-filed proposal is queryable and open for votes
	require.NoError(t, e.CastVote(imp.Id, "m0002", types.VoteChoiceFor))
}

func TestConcludeSurveySupportedOperatorSurvives(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 10)
	sv, err := e.ConductSurvey(dao.Id, "m0001")
	require.NoError(t, err)

	// 3 support / 2 oppose clears the line
	require.NoError(t, e.VoteSurvey(sv.Id, "m0001", types.SurveyVoteSupport))
	require.NoError(t, e.VoteSurvey(sv.Id, "m0002", types.SurveyVoteSupport))
	require.NoError(t, e.VoteSurvey(sv.Id, "m0003", types.SurveyVoteSupport))
	require.NoError(t, e.VoteSurvey(sv.Id, "m0004", types.SurveyVoteOppose))
	require.NoError(t, e.VoteSurvey(sv.Id, "m0005", types.SurveyVoteOppose))

	imp, err := e.ConcludeSurvey(sv.Id)
	require.NoError(t, err)
	require.Nil(t, imp)

	got, err := e.store.GetSurvey(sv.Id)
	require.NoError(t, err)
	require.Equal(t, types.SurveyConcluded, got.Status)
	require.False(t, got.ConcludedAt.IsZero())
}

func TestConcludeSurveyNoResponsesIsNeutral(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 5)
	sv, err := e.ConductSurvey(dao.Id, "m0001")
	require.NoError(t, err)

	imp, err := e.ConcludeSurvey(sv.Id)
	require.NoError(t, err)
	require.Nil(t, imp)
}

func TestConcludeSurveyOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 5)
	sv, err := e.ConductSurvey(dao.Id, "m0001")
	require.NoError(t, err)

	_, err = e.ConcludeSurvey(sv.Id)
	require.NoError(t, err)
	_, err = e.ConcludeSurvey(sv.Id)
	require.ErrorIs(t, err, ErrSurveyConcluded)

	require.ErrorIs(t, e.VoteSurvey(sv.Id, "m0001", types.SurveyVoteSupport), ErrSurveyConcluded)
}

func TestConcludeSurveyStaleOperator(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 5)
	sv, err := e.ConductSurvey(dao.Id, "m0001")
	require.NoError(t, err)

	require.NoError(t, e.VoteSurvey(sv.Id, "m0001", types.SurveyVoteOppose))
	require.NoError(t, e.VoteSurvey(sv.Id, "m0002", types.SurveyVoteOppose))

	// the operator the survey judged is gone before conclusion
	dao, err = e.store.GetDAO(dao.Id)
	require.NoError(t, err)
	dao.OperatorId = "m0003"
	require.NoError(t, e.store.PutDAO(dao))
	_, err = e.store.Commit()
	require.NoError(t, err)

	imp, err := e.ConcludeSurvey(sv.Id)
	require.NoError(t, err)
	require.Nil(t, imp)
}
