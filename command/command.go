package command

import (
	"encoding/json"

	"github.com/baekya-protocol/baekya-protocol-sub000/types"
)

// Command is the envelope every collaborator request arrives in. Sender is
// the acting member id; the signature layer above the engine has already
// authenticated it.
type Command struct {
	Version uint8       `json:"version"`
	Type    CommandType `json:"type"`
	Sender  string      `json:"sender"`
	Cmd     any         `json:"cmd"`
}

type SubmitProposalCmd struct {
	DAOId       string             `json:"daoId"`
	Kind        types.ProposalKind `json:"kind"`
	Title       string             `json:"title"`
	Description string             `json:"description"`

	ProposedDAOName    string      `json:"proposedDaoName,omitempty"`
	ProposedDCAs       []types.DCA `json:"proposedDcas,omitempty"`
	InitialOPCandidate string      `json:"initialOpCandidate,omitempty"`

	TargetOperator string `json:"targetOperator,omitempty"`
}

type PayStakeCmd struct {
	Proposal string `json:"proposal"`
	Amount   uint64 `json:"amount"`
}

type EndorseCmd struct {
	Proposal string `json:"proposal"`
	Amount   uint64 `json:"amount"`
}

type EnterVotingCmd struct {
	Proposal string `json:"proposal"`
}

type CastVoteCmd struct {
	Proposal string           `json:"proposal"`
	Choice   types.VoteChoice `json:"choice"`
}

type RecordOPDecisionCmd struct {
	Proposal string         `json:"proposal"`
	Decision types.Decision `json:"decision"`
	Comment  string         `json:"comment"`
}

type SubmitObjectionCmd struct {
	Proposal string `json:"proposal"`
	Reason   string `json:"reason"`
	Details  string `json:"details"`
}

type FinalDecideCmd struct {
	Proposal            string         `json:"proposal"`
	Decision            types.Decision `json:"decision"`
	Reason              string         `json:"reason"`
	AdoptedObjectionIds []string       `json:"adoptedObjectionIds,omitempty"`
}

type RespondSuccessionCmd struct {
	DAO    string `json:"dao"`
	Accept bool   `json:"accept"`
}

type ConductSurveyCmd struct {
	DAO string `json:"dao"`
}

type VoteSurveyCmd struct {
	Survey string `json:"survey"`
	Vote   string `json:"vote"`
}

type ConcludeSurveyCmd struct {
	Survey string `json:"survey"`
}

type AddMemberCmd struct {
	DAO    string `json:"dao"`
	Member string `json:"member"`
}

type GrantTokensCmd struct {
	Member string `json:"member"`
	Amount uint64 `json:"amount"`
}

type commandTmpl[Cmd any] struct {
	Version uint8       `json:"version"`
	Type    CommandType `json:"type"`
	Sender  string      `json:"sender"`
	Cmd     Cmd         `json:"cmd"`
}

func parseCommandType(dat []byte) CommandType {
	var c struct {
		Type CommandType `json:"type"`
	}
	err := json.Unmarshal(dat, &c)
	if err != nil {
		return CommandTypeUnknown
	}
	return c.Type
}

func unmarshalCommand[Cmd any](dat []byte) (bc *Command, err error) {
	var ct commandTmpl[Cmd]
	err = json.Unmarshal(dat, &ct)
	if err != nil {
		return
	}
	bc = new(Command)
	bc.Version = ct.Version
	bc.Type = ct.Type
	bc.Sender = ct.Sender
	bc.Cmd = &ct.Cmd
	return
}

func UnmarshalCommand(dat []byte) (bc *Command, err error) {
	tp := parseCommandType(dat)
	switch tp {
	case CommandTypeSubmitProposal:
		return unmarshalCommand[SubmitProposalCmd](dat)
	case CommandTypePayStake:
		return unmarshalCommand[PayStakeCmd](dat)
	case CommandTypeEndorse:
		return unmarshalCommand[EndorseCmd](dat)
	case CommandTypeEnterVoting:
		return unmarshalCommand[EnterVotingCmd](dat)
	case CommandTypeCastVote:
		return unmarshalCommand[CastVoteCmd](dat)
	case CommandTypeRecordOPDecision:
		return unmarshalCommand[RecordOPDecisionCmd](dat)
	case CommandTypeSubmitObjection:
		return unmarshalCommand[SubmitObjectionCmd](dat)
	case CommandTypeFinalDecide:
		return unmarshalCommand[FinalDecideCmd](dat)
	case CommandTypeRespondSuccession:
		return unmarshalCommand[RespondSuccessionCmd](dat)
	case CommandTypeConductSurvey:
		return unmarshalCommand[ConductSurveyCmd](dat)
	case CommandTypeVoteSurvey:
		return unmarshalCommand[VoteSurveyCmd](dat)
	case CommandTypeConcludeSurvey:
		return unmarshalCommand[ConcludeSurveyCmd](dat)
	case CommandTypeAddMember:
		return unmarshalCommand[AddMemberCmd](dat)
	case CommandTypeGrantTokens:
		return unmarshalCommand[GrantTokensCmd](dat)
	default:
		err = ErrUnsupportedCommandType
	}
	return
}

func MarshalCommand(bc *Command) (dat []byte, err error) {
	return json.Marshal(bc)
}
