package gov

import (
	"testing"
	"time"

	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/require"
)

func TestTickFailsExpiredProposals(t *testing.T) {
	e, clock := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 200)
	p := submitVoting(t, e, dao.Id, "top", types.KindGeneral)

	// simulates the startup tick after downtime spanning the voting window
	clock.Advance(15 * 24 * time.Hour)
	po := NewPoller(e, time.Minute, cmtlog.NewNopLogger())
	po.Tick()

	got := getProposal(t, e, p.Id)
	require.Equal(t, types.ProposalStatusFailed, got.Status)
	require.Equal(t, "quorum not met by deadline", got.StatusReason)
}

func TestTickAdvancesExpiredObjectionWindows(t *testing.T) {
	e, clock := newTestEngine(t)
	dao := devDAO(t, e)
	p := passGeneral(t, e, dao.Id)
	require.NoError(t, e.RecordOPDecision(p.Id, "top", types.DecisionApprove, ""))

	clock.Advance(e.cfg.ObjectionWindow + time.Second)
	po := NewPoller(e, time.Minute, cmtlog.NewNopLogger())
	po.Tick()

	require.Equal(t, types.ProposalStatusTopOpFinal, getProposal(t, e, p.Id).Status)
}

func TestTickLeavesUnexpiredProposalsAlone(t *testing.T) {
	e, _ := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 200)
	p := submitVoting(t, e, dao.Id, "top", types.KindGeneral)
	version := e.store.Version()

	po := NewPoller(e, time.Minute, cmtlog.NewNopLogger())
	po.Tick()

	require.Equal(t, types.ProposalStatusVoting, getProposal(t, e, p.Id).Status)
	// no-op recheck writes nothing
	require.Equal(t, version, e.store.Version())
}

func TestOpenProposalsSkipsSettledAndFunding(t *testing.T) {
	e, clock := newTestEngine(t)
	dao := devDAO(t, e)
	addMembers(t, e, dao.Id, 200)

	funding, err := e.SubmitProposal(ProposalInput{
		DAOId:    dao.Id,
		Proposer: "top",
		Kind:     types.KindGeneral,
		Title:    "still funding",
	})
	require.NoError(t, err)
	voting := submitVoting(t, e, dao.Id, "top", types.KindGeneral)
	failed := submitVoting(t, e, dao.Id, "top", types.KindGeneral)
	clock.Advance(15 * 24 * time.Hour)
	require.NoError(t, e.Recheck(failed.Id))

	open, err := e.store.OpenProposals()
	require.NoError(t, err)
	var ids []string
	for _, p := range open {
		ids = append(ids, p.Id)
	}
	require.Equal(t, []string{voting.Id}, ids)
	require.NotContains(t, ids, funding.Id)
	require.NotContains(t, ids, failed.Id)
}
