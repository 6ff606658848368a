package gov

import "github.com/baekya-protocol/baekya-protocol-sub000/types"

// Pure quorum and threshold arithmetic. All inputs are already-validated
// integers; division happens only on a non-zero decisive total.

// RequiredQuorumVotes is ceil(memberCount * quorumPct / 100).
func RequiredQuorumVotes(memberCount int, p *types.Proposal) uint64 {
	if memberCount <= 0 {
		return 0
	}
	return (uint64(memberCount)*p.QuorumPct + 99) / 100
}

// DecisiveTotal excludes abstentions.
func DecisiveTotal(p *types.Proposal) uint64 {
	return p.VotesFor + p.VotesAgainst
}

// PassesApproval reports votesFor/decisive >= thresholdPct/100 in integer
// form. An all-abstain tally can never pass.
func PassesApproval(p *types.Proposal) bool {
	decisive := DecisiveTotal(p)
	if decisive == 0 {
		return false
	}
	return p.VotesFor*100 >= p.ThresholdPct*decisive
}

// QuorumReached reports whether every cast vote, abstentions included,
// meets the required quorum.
func QuorumReached(memberCount int, p *types.Proposal) bool {
	return p.TotalVotes() >= RequiredQuorumVotes(memberCount, p)
}
