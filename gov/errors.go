package gov

import (
	"errors"

	"github.com/baekya-protocol/baekya-protocol-sub000/state"
)

var (
	ErrInvalidProposal   = errors.New("invalid proposal")
	ErrInvalidVoteChoice = errors.New("vote choice invalid")
	ErrNotMember         = errors.New("not a dao member")
	ErrNotAuthorized     = errors.New("not authorized")

	ErrNotVotingStage = errors.New("proposal not in voting stage")
	ErrVotingExpired  = errors.New("voting window expired")
	ErrWrongStage     = errors.New("operation invalid for current stage")
	ErrWindowClosed   = errors.New("objection window closed")

	ErrAlreadyVoted     = errors.New("already voted")
	ErrUnknownObjection = errors.New("unknown objection")
	ErrAlreadyResolved  = errors.New("collateral already resolved")

	ErrNoActiveSuccession = errors.New("no active succession")
	ErrOfferNotPending    = errors.New("succession offer not pending for member")

	ErrSurveyConcluded = errors.New("survey already concluded")
	ErrInvalidSurveyVote = errors.New("survey vote invalid")
)

// FailureClass buckets rejections for the API layer. Every class is local and
// recoverable; callers correct the command and retry, nothing retries
// automatically.
type FailureClass int

const (
	ClassInternal FailureClass = iota
	ClassValidation
	ClassAuthorization
	ClassStage
	ClassCapacity
)

func Classify(err error) FailureClass {
	switch {
	case errors.Is(err, state.ErrProposalNoexists),
		errors.Is(err, state.ErrDAONoexists),
		errors.Is(err, state.ErrAccountNoexists),
		errors.Is(err, state.ErrCollateralNoexists),
		errors.Is(err, state.ErrSuccessionNoexists),
		errors.Is(err, state.ErrSurveyNoexists),
		errors.Is(err, state.ErrInsufficientBalance),
		errors.Is(err, ErrInvalidProposal),
		errors.Is(err, ErrInvalidVoteChoice),
		errors.Is(err, ErrInvalidSurveyVote):
		return ClassValidation
	case errors.Is(err, ErrNotAuthorized), errors.Is(err, ErrNotMember):
		return ClassAuthorization
	case errors.Is(err, ErrNotVotingStage),
		errors.Is(err, ErrVotingExpired),
		errors.Is(err, ErrWrongStage),
		errors.Is(err, ErrWindowClosed),
		errors.Is(err, ErrNoActiveSuccession),
		errors.Is(err, ErrOfferNotPending),
		errors.Is(err, ErrSurveyConcluded):
		return ClassStage
	case errors.Is(err, ErrAlreadyVoted),
		errors.Is(err, ErrUnknownObjection),
		errors.Is(err, ErrAlreadyResolved):
		return ClassCapacity
	}
	return ClassInternal
}
