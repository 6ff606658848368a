package types

import "time"

type ProposalKind uint64

const (
	KindGeneral     ProposalKind = 1
	KindImpeachment ProposalKind = 2
	KindDAOCreation ProposalKind = 3
)

func (k ProposalKind) String() string {
	switch k {
	case KindGeneral:
		return "general"
	case KindImpeachment:
		return "impeachment"
	case KindDAOCreation:
		return "dao_creation"
	}
	return "unknown"
}

type ProposalStatus uint64

const (
	ProposalStatusFunding         ProposalStatus = 1
	ProposalStatusVoting          ProposalStatus = 2
	ProposalStatusDAOOpReview     ProposalStatus = 3
	ProposalStatusOpsDAOObjection ProposalStatus = 4
	ProposalStatusTopOpFinal      ProposalStatus = 5
	ProposalStatusApproved        ProposalStatus = 6
	ProposalStatusRejected        ProposalStatus = 7
	ProposalStatusFailed          ProposalStatus = 8
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalStatusFunding:
		return "funding"
	case ProposalStatusVoting:
		return "voting"
	case ProposalStatusDAOOpReview:
		return "dao_op_review"
	case ProposalStatusOpsDAOObjection:
		return "ops_dao_objection"
	case ProposalStatusTopOpFinal:
		return "top_op_final"
	case ProposalStatusApproved:
		return "approved"
	case ProposalStatusRejected:
		return "rejected"
	case ProposalStatusFailed:
		return "failed"
	}
	return "unknown"
}

// InReview reports whether the proposal passed voting and sits in one of the
// three review tiers.
func (s ProposalStatus) InReview() bool {
	return s == ProposalStatusDAOOpReview || s == ProposalStatusOpsDAOObjection || s == ProposalStatusTopOpFinal
}

// Terminal reports whether no further transition can happen.
func (s ProposalStatus) Terminal() bool {
	return s == ProposalStatusApproved || s == ProposalStatusRejected || s == ProposalStatusFailed
}

type VoteChoice uint64

const (
	VoteChoiceFor     VoteChoice = 1
	VoteChoiceAgainst VoteChoice = 2
	VoteChoiceAbstain VoteChoice = 3
)

func (v VoteChoice) Valid() bool {
	return v == VoteChoiceFor || v == VoteChoiceAgainst || v == VoteChoiceAbstain
}

func (v VoteChoice) String() string {
	switch v {
	case VoteChoiceFor:
		return "for"
	case VoteChoiceAgainst:
		return "against"
	case VoteChoiceAbstain:
		return "abstain"
	}
	return "unknown"
}

type OpDecision uint64

const (
	OpDecisionNone     OpDecision = 0
	OpDecisionApproved OpDecision = 1
	OpDecisionRejected OpDecision = 2
)

type Decision uint64

const (
	DecisionApprove Decision = 1
	DecisionReject  Decision = 2
)

type Proposal struct {
	Id          string         `json:"id"`
	DAOId       string         `json:"dao_id"`
	Kind        ProposalKind   `json:"kind"`
	Status      ProposalStatus `json:"status"`
	Proposer    string         `json:"proposer"`
	Title       string         `json:"title"`
	Description string         `json:"description"`

	// Funding stage counters.
	Stake        uint64 `json:"stake"`
	Endorsements uint64 `json:"endorsements"`

	// Voting stage. Tallies only move upward and only while Status is Voting.
	VotesFor     uint64                `json:"votes_for"`
	VotesAgainst uint64                `json:"votes_against"`
	VotesAbstain uint64                `json:"votes_abstain"`
	Voters       map[string]VoteChoice `json:"voters"`
	QuorumPct    uint64                `json:"quorum_pct"`
	ThresholdPct uint64                `json:"threshold_pct"`
	VotingStart  time.Time             `json:"voting_start"`
	VotingEnd    time.Time             `json:"voting_end"`

	// Review cascade.
	OpDecision        OpDecision     `json:"op_decision"`
	OpReviewer        string         `json:"op_reviewer,omitempty"`
	OpReviewComment   string         `json:"op_review_comment,omitempty"`
	OpDecidedAt       time.Time      `json:"op_decided_at,omitempty"`
	ObjectionDeadline time.Time      `json:"objection_deadline,omitempty"`
	Objections        []Objection    `json:"objections,omitempty"`
	FinalDecision     *FinalDecision `json:"final_decision,omitempty"`

	// DAO-creation payload.
	CollateralAmount   uint64 `json:"collateral_amount,omitempty"`
	ProposedDAOName    string `json:"proposed_dao_name,omitempty"`
	ProposedDCAs       []DCA  `json:"proposed_dcas,omitempty"`
	InitialOPCandidate string `json:"initial_op_candidate,omitempty"`

	// Impeachment payload.
	TargetOperator string `json:"target_operator,omitempty"`

	StatusReason string    `json:"status_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ConcludedAt  time.Time `json:"concluded_at,omitempty"`
}

// TotalVotes counts every cast vote including abstentions.
func (p *Proposal) TotalVotes() uint64 {
	return p.VotesFor + p.VotesAgainst + p.VotesAbstain
}

type Objection struct {
	Id           string    `json:"id"`
	ProposalId   string    `json:"proposal_id"`
	ObjectorId   string    `json:"objector_id"`
	ObjectorRole string    `json:"objector_role"`
	Reason       string    `json:"reason"`
	Details      string    `json:"details"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Adopted      bool      `json:"adopted"`
}

type FinalDecision struct {
	ProposalId          string    `json:"proposal_id"`
	Decision            Decision  `json:"decision"`
	Reason              string    `json:"reason"`
	AdoptedObjectionIds []string  `json:"adopted_objection_ids,omitempty"`
	Reviewer            string    `json:"reviewer"`
	DecidedAt           time.Time `json:"decided_at"`
}

type CollateralState uint64

const (
	CollateralLocked            CollateralState = 1
	CollateralConverted         CollateralState = 2
	CollateralPartiallyRefunded CollateralState = 3
)

func (s CollateralState) String() string {
	switch s {
	case CollateralLocked:
		return "locked"
	case CollateralConverted:
		return "converted"
	case CollateralPartiallyRefunded:
		return "partially_refunded"
	}
	return "unknown"
}

type CollateralRecord struct {
	ProposalId   string          `json:"proposal_id"`
	Proposer     string          `json:"proposer"`
	AmountLocked uint64          `json:"amount_locked"`
	State        CollateralState `json:"state"`
	Refunded     uint64          `json:"refunded"`
	Burned       uint64          `json:"burned"`
	LockedAt     time.Time       `json:"locked_at"`
	ResolvedAt   time.Time       `json:"resolved_at,omitempty"`
}

type DCA struct {
	Id                   string `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Value                uint64 `json:"value"`
	VerificationCriteria string `json:"verification_criteria,omitempty"`
}

type DAO struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Purpose     string    `json:"purpose"`
	Description string    `json:"description"`
	FounderId   string    `json:"founder_id"`
	OperatorId  string    `json:"operator_id"`
	Operations  bool      `json:"operations"`
	Members     []string  `json:"members"`
	DCAs        []DCA     `json:"dcas,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasMember does a linear scan; member sets stay small enough that a
// persisted index is not worth it.
func (d *DAO) HasMember(memberId string) bool {
	for _, m := range d.Members {
		if m == memberId {
			return true
		}
	}
	return false
}

type TokenHolder struct {
	Rank         int       `json:"rank"`
	MemberId     string    `json:"member_id"`
	TokenBalance uint64    `json:"token_balance"`
	RegisteredAt time.Time `json:"registered_at"`
}

type SuccessionStatus uint64

const (
	SuccessionPending     SuccessionStatus = 1
	SuccessionInstalled   SuccessionStatus = 2
	SuccessionNoSuccessor SuccessionStatus = 3
)

func (s SuccessionStatus) String() string {
	switch s {
	case SuccessionPending:
		return "pending"
	case SuccessionInstalled:
		return "installed"
	case SuccessionNoSuccessor:
		return "no_successor"
	}
	return "unknown"
}

// Succession tracks the post-impeachment operator cascade for one DAO. The
// holder list is fixed when the cascade starts; Rank walks it left to right.
type Succession struct {
	DAOId             string           `json:"dao_id"`
	ProposalId        string           `json:"proposal_id"`
	ImpeachedOperator string           `json:"impeached_operator"`
	Holders           []TokenHolder    `json:"holders"`
	Rank              int              `json:"rank"`
	Status            SuccessionStatus `json:"status"`
	OfferedTo         string           `json:"offered_to,omitempty"`
	OfferExpiry       time.Time        `json:"offer_expiry,omitempty"`
	NewOperator       string           `json:"new_operator,omitempty"`
	StartedAt         time.Time        `json:"started_at"`
	ResolvedAt        time.Time        `json:"resolved_at,omitempty"`
}

type SurveyStatus uint64

const (
	SurveyActive    SurveyStatus = 1
	SurveyConcluded SurveyStatus = 2
)

const (
	SurveyVoteSupport = "support"
	SurveyVoteNeutral = "neutral"
	SurveyVoteOppose  = "oppose"
)

type Survey struct {
	Id          string            `json:"id"`
	DAOId       string            `json:"dao_id"`
	OperatorId  string            `json:"operator_id"`
	CreatedBy   string            `json:"created_by"`
	Status      SurveyStatus      `json:"status"`
	Support     uint64            `json:"support"`
	Neutral     uint64            `json:"neutral"`
	Oppose      uint64            `json:"oppose"`
	Voters      map[string]string `json:"voters"`
	CreatedAt   time.Time         `json:"created_at"`
	ConcludedAt time.Time         `json:"concluded_at,omitempty"`
}

type ContributionCredit struct {
	Index      uint64    `json:"index"`
	MemberId   string    `json:"member_id"`
	DAOId      string    `json:"dao_id"`
	ProposalId string    `json:"proposal_id"`
	Amount     uint64    `json:"amount"`
	Reason     string    `json:"reason"`
	IssuedAt   time.Time `json:"issued_at"`
}
