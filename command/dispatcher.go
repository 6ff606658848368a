package command

import (
	"github.com/baekya-protocol/baekya-protocol-sub000/gov"
	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

// Dispatcher routes decoded command envelopes into the engine. It owns no
// state of its own.
type Dispatcher struct {
	logger cmtlog.Logger
	engine *gov.Engine
}

func NewDispatcher(engine *gov.Engine, logger cmtlog.Logger) *Dispatcher {
	return &Dispatcher{
		logger: logger.With("module", "dispatcher"),
		engine: engine,
	}
}

// Apply executes one command for its sender. The result, when non-nil, is
// the record the command created.
func (d *Dispatcher) Apply(bc *Command) (result any, err error) {
	if bc.Sender == "" {
		return nil, ErrInvalidCommand
	}
	switch cmd := bc.Cmd.(type) {
	case *SubmitProposalCmd:
		return d.engine.SubmitProposal(gov.ProposalInput{
			DAOId:              cmd.DAOId,
			Proposer:           bc.Sender,
			Kind:               cmd.Kind,
			Title:              cmd.Title,
			Description:        cmd.Description,
			ProposedDAOName:    cmd.ProposedDAOName,
			ProposedDCAs:       cmd.ProposedDCAs,
			InitialOPCandidate: cmd.InitialOPCandidate,
			TargetOperator:     cmd.TargetOperator,
		})
	case *PayStakeCmd:
		return nil, d.engine.PayProposalStake(cmd.Proposal, bc.Sender, cmd.Amount)
	case *EndorseCmd:
		return nil, d.engine.EndorseProposal(cmd.Proposal, bc.Sender, cmd.Amount)
	case *EnterVotingCmd:
		return nil, d.engine.EnterVoting(cmd.Proposal)
	case *CastVoteCmd:
		return nil, d.engine.CastVote(cmd.Proposal, bc.Sender, cmd.Choice)
	case *RecordOPDecisionCmd:
		return nil, d.engine.RecordOPDecision(cmd.Proposal, bc.Sender, cmd.Decision, cmd.Comment)
	case *SubmitObjectionCmd:
		objectionId, err := d.engine.SubmitObjection(cmd.Proposal, bc.Sender, cmd.Reason, cmd.Details)
		if err != nil {
			return nil, err
		}
		return objectionId, nil
	case *FinalDecideCmd:
		return nil, d.engine.FinalDecide(cmd.Proposal, bc.Sender, cmd.Decision, cmd.Reason, cmd.AdoptedObjectionIds)
	case *RespondSuccessionCmd:
		return nil, d.engine.RespondToSuccessionOffer(cmd.DAO, bc.Sender, cmd.Accept)
	case *ConductSurveyCmd:
		return d.engine.ConductSurvey(cmd.DAO, bc.Sender)
	case *VoteSurveyCmd:
		return nil, d.engine.VoteSurvey(cmd.Survey, bc.Sender, cmd.Vote)
	case *ConcludeSurveyCmd:
		var impeachment *types.Proposal
		impeachment, err = d.engine.ConcludeSurvey(cmd.Survey)
		if err != nil {
			return nil, err
		}
		if impeachment == nil {
			return nil, nil
		}
		return impeachment, nil
	case *AddMemberCmd:
		return nil, d.engine.AddMember(cmd.DAO, cmd.Member)
	case *GrantTokensCmd:
		return nil, d.engine.GrantTokens(cmd.Member, cmd.Amount)
	}
	return nil, ErrUnsupportedCommandType
}
