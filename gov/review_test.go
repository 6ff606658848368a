package gov

import (
	"testing"
	"time"

	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	"github.com/stretchr/testify/require"
)

// passGeneral walks a fresh proposal through voting into DAOOpReview.
func passGeneral(t *testing.T, e *Engine, daoId string) *types.Proposal {
	t.Helper()
	members := addMembers(t, e, daoId, 5)
	p := submitVoting(t, e, daoId, "top", types.KindGeneral)
	castVotes(t, e, p.Id, members, 2, 0, 0)
	got := getProposal(t, e, p.Id)
	require.Equal(t, types.ProposalStatusDAOOpReview, got.Status)
	return got
}

func TestRecordOPDecisionAuthorization(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	p := passGeneral(t, e, dao.Id)

	err := e.RecordOPDecision(p.Id, "m0001", types.DecisionApprove, "")
	require.ErrorIs(t, err, ErrNotAuthorized)
	require.Equal(t, ClassAuthorization, Classify(err))
}

func TestRecordOPDecisionApproveOpensObjectionWindow(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	p := passGeneral(t, e, dao.Id)

	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionApprove, "looks fine"))
	got := getProposal(t, e, p.Id)
	require.Equal(t, types.ProposalStatusOpsDAOObjection, got.Status)
	require.Equal(t, types.OpDecisionApproved, got.OpDecision)
	require.Equal(t, got.OpDecidedAt.Add(e.cfg.ObjectionWindow), got.ObjectionDeadline)

	// second decision hits the stage guard
	err := e.RecordOPDecision(p.Id, "top", types.DecisionReject, "")
	require.ErrorIs(t, err, ErrWrongStage)
}

func TestRecordOPDecisionRejectIsTerminal(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	p := passGeneral(t, e, dao.Id)

	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionReject, "not viable"))
	got := getProposal(t, e, p.Id)
	require.Equal(t, types.ProposalStatusRejected, got.Status)
	require.Equal(t, "rejected by dao operator", got.StatusReason)
	require.False(t, got.ConcludedAt.IsZero())
}

func TestObjectionWindowBoundary(t *testing.T) {
	e, clock := newTestEngine(t)
	dao := devDAO(t, e)
	p := passGeneral(t, e, dao.Id)
	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionApprove, ""))

	// one second before the deadline is accepted
	clock.Advance(e.cfg.ObjectionWindow - time.Second)
	id, err := e.SubmitObjection(p.Id, "top", "too risky", "details")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// one second after is rejected without touching the record
	clock.Advance(2 * time.Second)
	_, err = e.SubmitObjection(p.Id, "top", "late", "")
	require.ErrorIs(t, err, ErrWindowClosed)
	require.Len(t, getProposal(t, e, p.Id).Objections, 1)
}

func TestSubmitObjectionRequiresOperatorRole(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	p := passGeneral(t, e, dao.Id)
	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionApprove, ""))

	_, err := e.SubmitObjection(p.Id, "m0001", "ordinary member", "")
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestPollerAdvancesObjectionStage(t *testing.T) {
	e, clock := newTestEngine(t)
	dao := devDAO(t, e)
	p := passGeneral(t, e, dao.Id)
	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionApprove, ""))

	clock.Advance(e.cfg.ObjectionWindow + time.Second)
	require.NoError(t, e.Recheck(p.Id))
	require.Equal(t, types.ProposalStatusTopOpFinal, getProposal(t, e, p.Id).Status)

	// objections after the poller closed the window report WindowClosed
	_, err := e.SubmitObjection(p.Id, "top", "late", "")
	require.ErrorIs(t, err, ErrWindowClosed)
}

func TestFinalDecideClosesExpiredWindowItself(t *testing.T) {
	e, clock := newTestEngine(t)
	dao := devDAO(t, e)
	p := passGeneral(t, e, dao.Id)
	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionApprove, ""))

	clock.Advance(e.cfg.ObjectionWindow + time.Second)
	require.NoError(t, e.FinalDecide(p.Id, "top", types.DecisionApprove, "fine", nil))
	got := getProposal(t, e, p.Id)
	require.Equal(t, types.ProposalStatusApproved, got.Status)
	require.NotNil(t, got.FinalDecision)
}

func TestFinalDecideAuthorizationAndStage(t *testing.T) {
	e, clock := newTestEngine(t)
	dao := devDAO(t, e)
	p := passGeneral(t, e, dao.Id)

	err := e.FinalDecide(p.Id, "m0001", types.DecisionApprove, "", nil)
	require.ErrorIs(t, err, ErrNotAuthorized)

	// top operator, but objection window has not even opened
	err = e.FinalDecide(p.Id, "top", types.DecisionApprove, "", nil)
	require.ErrorIs(t, err, ErrWrongStage)

	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionApprove, ""))
	// window still open
	err = e.FinalDecide(p.Id, "top", types.DecisionApprove, "", nil)
	require.ErrorIs(t, err, ErrWrongStage)

	clock.Advance(e.cfg.ObjectionWindow + time.Second)
	require.NoError(t, e.FinalDecide(p.Id, "top", types.DecisionApprove, "", nil))
}

func TestFinalDecideUnknownObjectionAdoptsNothing(t *testing.T) {
	e, clock := newTestEngine(t)
	dao := devDAO(t, e)
	p := passGeneral(t, e, dao.Id)
	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionApprove, ""))

	idA, err := e.SubmitObjection(p.Id, "top", "objection a", "")
	require.NoError(t, err)

	clock.Advance(e.cfg.ObjectionWindow + time.Second)
	err = e.FinalDecide(p.Id, "top", types.DecisionReject, "", []string{idA, "no-such-id"})
	require.ErrorIs(t, err, ErrUnknownObjection)

	// nothing was adopted, stage not consumed
	got := getProposal(t, e, p.Id)
	require.False(t, got.Objections[0].Adopted)
	require.Nil(t, got.FinalDecision)

	credits, err := e.store.ListCredits()
	require.NoError(t, err)
	require.Empty(t, credits)
}

func TestFinalDecideRejectRewardsAdoptedObjectors(t *testing.T) {
	e, clock := newTestEngine(t)
	dao := devDAO(t, e)
	p := passGeneral(t, e, dao.Id)
	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionApprove, ""))

	idA, err := e.SubmitObjection(p.Id, "top", "objection a", "")
	require.NoError(t, err)
	idB, err := e.SubmitObjection(p.Id, "top", "objection b", "")
	require.NoError(t, err)

	clock.Advance(e.cfg.ObjectionWindow + time.Second)
	require.NoError(t, e.FinalDecide(p.Id, "top", types.DecisionReject, "objection a stands", []string{idA}))

	got := getProposal(t, e, p.Id)
	require.Equal(t, types.ProposalStatusRejected, got.Status)
	var adoptedA, adoptedB bool
	for _, o := range got.Objections {
		switch o.Id {
		case idA:
			adoptedA = o.Adopted
		case idB:
			adoptedB = o.Adopted
		}
	}
	require.True(t, adoptedA)
	require.False(t, adoptedB)

	credits, err := e.store.ListCredits()
	require.NoError(t, err)
	require.Len(t, credits, 1)
	require.Equal(t, "top", credits[0].MemberId)
	require.EqualValues(t, 160, credits[0].Amount)
}
