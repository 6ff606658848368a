package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/require"
)

var testGenesisTime = time.Unix(1700000000, 0)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), cmtlog.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func applyTestGenesis(t *testing.T, s *Store) {
	t.Helper()
	idSeq := 0
	newId := func() string {
		idSeq++
		return fmt.Sprintf("dao-%04d", idSeq)
	}
	gen := &types.GenesisDoc{
		ChainID:         "baekya-test",
		DAOs:            types.DefaultGenesisDAOs(),
		InitialOperator: "founder",
		OperatorGrant:   types.InitialOperatorGrant,
	}
	require.NoError(t, s.ApplyGenesis(gen, newId, testGenesisTime))
}

func TestApplyGenesisOnce(t *testing.T) {
	s := newTestStore(t)
	require.False(t, s.Initialized())
	applyTestGenesis(t, s)

	require.True(t, s.Initialized())
	require.Equal(t, "baekya-test", s.ChainId())

	ops, err := s.GetDAO(s.OpsDAOId())
	require.NoError(t, err)
	require.Equal(t, "Operations DAO", ops.Name)
	require.Equal(t, "founder", ops.OperatorId)
	require.True(t, ops.HasMember("founder"))

	daos, err := s.ListDAOs()
	require.NoError(t, err)
	require.Len(t, daos, 4)

	// one grant per genesis DAO
	acnt, err := s.GetAccount("founder")
	require.NoError(t, err)
	require.EqualValues(t, 4*types.InitialOperatorGrant, acnt.Balance)

	gen := &types.GenesisDoc{ChainID: "other", DAOs: types.DefaultGenesisDAOs(), InitialOperator: "x"}
	require.ErrorIs(t, s.ApplyGenesis(gen, func() string { return "dup" }, testGenesisTime), ErrAlreadyInitialized)
}

func TestProposalRoundtrip(t *testing.T) {
	s := newTestStore(t)
	applyTestGenesis(t, s)

	_, err := s.GetProposal("missing")
	require.ErrorIs(t, err, ErrProposalNoexists)

	p := &types.Proposal{
		Id:     "prop-1",
		DAOId:  "dao-0001",
		Kind:   types.KindGeneral,
		Status: types.ProposalStatusVoting,
		Voters: map[string]types.VoteChoice{
			"alice": types.VoteChoiceFor,
			"bob":   types.VoteChoiceAbstain,
		},
		VotesFor:     1,
		VotesAbstain: 1,
		VotingEnd:    testGenesisTime.Add(14 * 24 * time.Hour),
	}
	require.NoError(t, s.PutProposal(p))
	_, err = s.Commit()
	require.NoError(t, err)

	got, err := s.GetProposal("prop-1")
	require.NoError(t, err)
	require.Equal(t, p.Status, got.Status)
	require.Equal(t, types.VoteChoiceAbstain, got.Voters["bob"])
	require.True(t, got.VotingEnd.Equal(p.VotingEnd))
}

func TestRollbackDiscardsUncommitted(t *testing.T) {
	s := newTestStore(t)
	applyTestGenesis(t, s)
	version := s.Version()

	require.NoError(t, s.PutProposal(&types.Proposal{Id: "ghost"}))
	require.NoError(t, s.AppendCredit(&types.ContributionCredit{MemberId: "alice", Amount: 160}))
	s.Rollback()

	_, err := s.GetProposal("ghost")
	require.ErrorIs(t, err, ErrProposalNoexists)
	credits, err := s.ListCredits()
	require.NoError(t, err)
	require.Empty(t, credits)
	require.Equal(t, version, s.Version())

	// the credit counter rolled back with the header
	require.NoError(t, s.AppendCredit(&types.ContributionCredit{MemberId: "bob", Amount: 160}))
	_, err = s.Commit()
	require.NoError(t, err)
	credits, err = s.ListCredits()
	require.NoError(t, err)
	require.Len(t, credits, 1)
	require.EqualValues(t, 1, credits[0].Index)
}

func TestAccountBalances(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAccount("nobody")
	require.ErrorIs(t, err, ErrAccountNoexists)
	require.ErrorIs(t, s.LockBalance("nobody", 30), ErrInsufficientBalance)

	require.NoError(t, s.AddBalance("alice", 100, testGenesisTime))
	require.ErrorIs(t, s.LockBalance("alice", 101), ErrInsufficientBalance)

	require.NoError(t, s.LockBalance("alice", 30))
	acnt, err := s.GetAccount("alice")
	require.NoError(t, err)
	require.EqualValues(t, 70, acnt.Balance)
	require.EqualValues(t, 30, acnt.Locked)

	// half back, half gone
	require.NoError(t, s.ReleaseLocked("alice", 15, 15))
	acnt, err = s.GetAccount("alice")
	require.NoError(t, err)
	require.EqualValues(t, 85, acnt.Balance)
	require.EqualValues(t, 0, acnt.Locked)

	require.ErrorIs(t, s.ReleaseLocked("alice", 1, 0), ErrInsufficientBalance)

	burned, err := s.BurnAll("alice")
	require.NoError(t, err)
	require.EqualValues(t, 85, burned)
	acnt, err = s.GetAccount("alice")
	require.NoError(t, err)
	require.EqualValues(t, 0, acnt.Balance)

	// burning a never-seen member is a zero no-op
	burned, err = s.BurnAll("nobody")
	require.NoError(t, err)
	require.EqualValues(t, 0, burned)
}

func TestRankHoldersOrdering(t *testing.T) {
	s := newTestStore(t)
	dao := &types.DAO{
		Id:      "dao-r",
		Name:    "Ranking DAO",
		Members: []string{"old-op", "rich", "mid-b", "mid-a", "late", "broke"},
	}
	require.NoError(t, s.AddBalance("old-op", 500, testGenesisTime))
	require.NoError(t, s.AddBalance("rich", 90, testGenesisTime))
	require.NoError(t, s.AddBalance("mid-b", 40, testGenesisTime))
	require.NoError(t, s.AddBalance("mid-a", 40, testGenesisTime))
	require.NoError(t, s.AddBalance("late", 40, testGenesisTime.Add(time.Hour)))

	holders, err := s.RankHolders(dao, "old-op")
	require.NoError(t, err)

	// descending balance; equal balances by earliest registration, then id;
	// the excluded member and the zero-balance member never rank
	var order []string
	for i, h := range holders {
		require.Equal(t, i, h.Rank)
		order = append(order, h.MemberId)
	}
	require.Equal(t, []string{"rich", "mid-a", "mid-b", "late"}, order)
}

func TestFindDAOByName(t *testing.T) {
	s := newTestStore(t)
	applyTestGenesis(t, s)

	dao, err := s.FindDAOByName("Community DAO")
	require.NoError(t, err)
	require.Equal(t, "Community DAO", dao.Name)

	_, err = s.FindDAOByName("No Such DAO")
	require.ErrorIs(t, err, ErrDAONoexists)
}

func TestAppendCreditSequence(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.AppendCredit(&types.ContributionCredit{
			MemberId: fmt.Sprintf("m-%d", i),
			Amount:   160,
			IssuedAt: testGenesisTime,
		}))
	}
	_, err := s.Commit()
	require.NoError(t, err)

	credits, err := s.ListCredits()
	require.NoError(t, err)
	require.Len(t, credits, 3)
	for i, c := range credits {
		require.EqualValues(t, i+1, c.Index)
	}
}

func TestStoreReload(t *testing.T) {
	dir := t.TempDir()
	logger := cmtlog.NewNopLogger()
	s, err := NewStore(dir, logger)
	require.NoError(t, err)
	applyTestGenesis(t, s)
	require.NoError(t, s.PutSuccession(&types.Succession{
		DAOId:  "dao-0002",
		Status: types.SuccessionPending,
		Holders: []types.TokenHolder{
			{MemberId: "alice", TokenBalance: 10},
		},
		OfferedTo: "alice",
	}))
	_, err = s.Commit()
	require.NoError(t, err)
	hash := s.Hash()
	require.NoError(t, s.Close())

	s2, err := NewStore(dir, logger)
	require.NoError(t, err)
	defer s2.Close()
	require.True(t, s2.Initialized())
	require.Equal(t, "baekya-test", s2.ChainId())
	require.Equal(t, hash, s2.Hash())

	su, err := s2.GetSuccession("dao-0002")
	require.NoError(t, err)
	require.Equal(t, "alice", su.OfferedTo)

	sus, err := s2.ListSuccessions()
	require.NoError(t, err)
	require.Len(t, sus, 1)
}
