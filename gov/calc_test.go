package gov

import (
	"testing"

	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	"github.com/stretchr/testify/require"
)

func TestRequiredQuorumVotes(t *testing.T) {
	general := &types.Proposal{QuorumPct: 40}
	impeachment := &types.Proposal{QuorumPct: 60}

	require.EqualValues(t, 80, RequiredQuorumVotes(200, general))
	require.EqualValues(t, 120, RequiredQuorumVotes(200, impeachment))

	// ceil, not floor
	require.EqualValues(t, 1, RequiredQuorumVotes(1, general))
	require.EqualValues(t, 2, RequiredQuorumVotes(3, general))
	require.EqualValues(t, 0, RequiredQuorumVotes(0, general))
}

func TestRequiredQuorumVotesMonotonic(t *testing.T) {
	p := &types.Proposal{QuorumPct: 40}
	prev := uint64(0)
	for members := 1; members <= 500; members++ {
		got := RequiredQuorumVotes(members, p)
		require.GreaterOrEqual(t, got, prev, "members=%d", members)
		require.GreaterOrEqual(t, got, uint64(1), "members=%d", members)
		prev = got
	}
}

func TestPassesApprovalAllAbstain(t *testing.T) {
	p := &types.Proposal{ThresholdPct: 50, VotesAbstain: 100}
	require.False(t, PassesApproval(p))
	require.EqualValues(t, 0, DecisiveTotal(p))
}

func TestPassesApprovalExcludesAbstentions(t *testing.T) {
	// 45/85 decisive = 0.529 passes the 50% line
	p := &types.Proposal{ThresholdPct: 50, VotesFor: 45, VotesAgainst: 40, VotesAbstain: 10}
	require.True(t, PassesApproval(p))

	// exactly at the line passes
	p = &types.Proposal{ThresholdPct: 50, VotesFor: 50, VotesAgainst: 50}
	require.True(t, PassesApproval(p))

	// one under the line fails
	p = &types.Proposal{ThresholdPct: 50, VotesFor: 49, VotesAgainst: 51}
	require.False(t, PassesApproval(p))

	// impeachment threshold
	p = &types.Proposal{ThresholdPct: 60, VotesFor: 59, VotesAgainst: 41}
	require.False(t, PassesApproval(p))
	p = &types.Proposal{ThresholdPct: 60, VotesFor: 60, VotesAgainst: 40}
	require.True(t, PassesApproval(p))
}

func TestQuorumReachedCountsAbstentions(t *testing.T) {
	p := &types.Proposal{QuorumPct: 60, VotesFor: 70, VotesAgainst: 40, VotesAbstain: 5}
	require.False(t, QuorumReached(200, p))
	p.VotesAbstain = 10
	require.True(t, QuorumReached(200, p))
}
