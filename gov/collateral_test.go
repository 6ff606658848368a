package gov

import (
	"testing"
	"time"

	"github.com/baekya-protocol/baekya-protocol-sub000/state"
	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	"github.com/stretchr/testify/require"
)

// submitDAOCreation locks collateral for a new-DAO proposal by "top", whose
// genesis grant covers the 30P deposit.
func submitDAOCreation(t *testing.T, e *Engine, daoId string) *types.Proposal {
	t.Helper()
	p, err := e.SubmitProposal(ProposalInput{
		DAOId:              daoId,
		Proposer:           "top",
		Kind:               types.KindDAOCreation,
		Title:              "new dao",
		ProposedDAOName:    "Research DAO",
		InitialOPCandidate: "m0001",
	})
	require.NoError(t, err)
	return p
}

func TestLockCollateralOnSubmission(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 5)

	before, err := e.store.GetAccount("top")
	require.NoError(t, err)

	p := submitDAOCreation(t, e, dao.Id)
	require.EqualValues(t, 30, p.CollateralAmount)

	after, err := e.store.GetAccount("top")
	require.NoError(t, err)
	require.Equal(t, before.Balance-30, after.Balance)
	require.EqualValues(t, 30, after.Locked)

	c, err := e.store.GetCollateral(p.Id)
	require.NoError(t, err)
	require.Equal(t, types.CollateralLocked, c.State)
	require.EqualValues(t, 30, c.AmountLocked)
}

func TestLockCollateralInsufficientBalance(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 5)
	require.NoError(t, e.AddMember(dao.Id, "pauper"))

	_, err := e.SubmitProposal(ProposalInput{
		DAOId:              dao.Id,
		Proposer:           "pauper",
		Kind:               types.KindDAOCreation,
		Title:              "cannot afford",
		ProposedDAOName:    "Broke DAO",
		InitialOPCandidate: "pauper",
	})
	require.ErrorIs(t, err, state.ErrInsufficientBalance)

	// the whole command rolled back: no proposal, no collateral record
	proposals, err := e.store.ListProposals()
	require.NoError(t, err)
	require.Empty(t, proposals)
}

func TestCollateralHalfRefundOnReviewReject(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	members := addMembers(t, e, dao.Id, 5)

	p := submitDAOCreation(t, e, dao.Id)
	require.NoError(t, e.EnterVoting(p.Id))
	castVotes(t, e, p.Id, members, 2, 0, 0)
	require.Equal(t, types.ProposalStatusDAOOpReview, getProposal(t, e, p.Id).Status)

	balBefore, err := e.store.GetAccount("top")
	require.NoError(t, err)

	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionReject, "no"))

	c, err := e.store.GetCollateral(p.Id)
	require.NoError(t, err)
	require.Equal(t, types.CollateralPartiallyRefunded, c.State)
	require.EqualValues(t, 15, c.Refunded)
	require.EqualValues(t, 15, c.Burned)

	balAfter, err := e.store.GetAccount("top")
	require.NoError(t, err)
	require.Equal(t, balBefore.Balance+15, balAfter.Balance)
	require.EqualValues(t, 0, balAfter.Locked)
}

func TestCollateralConvertedOnApproval(t *testing.T) {
	e, clock := newTestEngine(t)
	dao := devDAO(t, e)
	members := addMembers(t, e, dao.Id, 5)

	p := submitDAOCreation(t, e, dao.Id)
	require.NoError(t, e.EnterVoting(p.Id))
	castVotes(t, e, p.Id, members, 2, 0, 0)
	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionApprove, ""))
	clock.Advance(e.cfg.ObjectionWindow + time.Second)
	require.NoError(t, e.FinalDecide(p.Id, "top", types.DecisionApprove, "create it", nil))

	c, err := e.store.GetCollateral(p.Id)
	require.NoError(t, err)
	require.Equal(t, types.CollateralConverted, c.State)

	// the new DAO exists with the candidate installed as operator
	created, err := e.store.FindDAOByName("Research DAO")
	require.NoError(t, err)
	require.Equal(t, "m0001", created.OperatorId)
	require.True(t, created.HasMember("m0001"))

	// the pool landed on the initial operator
	acnt, err := e.store.GetAccount("m0001")
	require.NoError(t, err)
	require.EqualValues(t, 30, acnt.Balance)
}

func TestResolveCollateralIdempotentOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	members := addMembers(t, e, dao.Id, 5)

	p := submitDAOCreation(t, e, dao.Id)
	require.NoError(t, e.EnterVoting(p.Id))
	castVotes(t, e, p.Id, members, 2, 0, 0)
	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionReject, "no"))

	balBefore, err := e.store.GetAccount("top")
	require.NoError(t, err)

	err = e.ResolveCollateral(p.Id, types.DecisionReject)
	require.ErrorIs(t, err, ErrAlreadyResolved)
	require.Equal(t, ClassCapacity, Classify(err))

	// balances unchanged by the second call
	balAfter, err := e.store.GetAccount("top")
	require.NoError(t, err)
	require.Equal(t, balBefore.Balance, balAfter.Balance)
	require.Equal(t, balBefore.Locked, balAfter.Locked)
}

func TestCollateralRefundedOnQuorumFailure(t *testing.T) {
	e, clock := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 5)

	p := submitDAOCreation(t, e, dao.Id)
	require.NoError(t, e.EnterVoting(p.Id))

	clock.Advance(15 * 24 * time.Hour)
	require.NoError(t, e.Recheck(p.Id))
	require.Equal(t, types.ProposalStatusFailed, getProposal(t, e, p.Id).Status)

	c, err := e.store.GetCollateral(p.Id)
	require.NoError(t, err)
	require.Equal(t, types.CollateralPartiallyRefunded, c.State)
	require.EqualValues(t, 15, c.Refunded)
	require.EqualValues(t, 15, c.Burned)
}
