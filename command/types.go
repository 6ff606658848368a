package command

import "errors"

type CommandType uint8

const (
	CommandTypeUnknown           CommandType = 0
	CommandTypeSubmitProposal    CommandType = 1
	CommandTypePayStake          CommandType = 2
	CommandTypeEndorse           CommandType = 3
	CommandTypeEnterVoting       CommandType = 4
	CommandTypeCastVote          CommandType = 5
	CommandTypeRecordOPDecision  CommandType = 6
	CommandTypeSubmitObjection   CommandType = 7
	CommandTypeFinalDecide       CommandType = 8
	CommandTypeRespondSuccession CommandType = 9
	CommandTypeConductSurvey     CommandType = 10
	CommandTypeVoteSurvey        CommandType = 11
	CommandTypeConcludeSurvey    CommandType = 12
	CommandTypeAddMember         CommandType = 13
	CommandTypeGrantTokens       CommandType = 14
)

const (
	CommandVersion0 uint8 = 0
	CommandVersion1 uint8 = 1
)

var (
	ErrInvalidCommand         = errors.New("invalid command")
	ErrUnsupportedCommandType = errors.New("unsupported command type")
	ErrUnmatchedCommandType   = errors.New("unmatched command type")
)
