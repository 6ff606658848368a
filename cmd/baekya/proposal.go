package main

import (
	"github.com/baekya-protocol/baekya-protocol-sub000/command"
	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	"github.com/spf13/cobra"
)

type newProposalArguments struct {
	Url         string
	Sender      string
	DAO         string
	Kind        uint64
	Title       string
	Description string

	DAOName     string
	OPCandidate string
	Target      string
}

var newProposalArgs newProposalArguments

var newProposalCmd = &cobra.Command{
	Use:   "newproposal",
	Short: "Submit a proposal into the funding stage",
	Long:  ``,
	Run:   newProposalRun,
}

func init() {
	urlFlag(newProposalCmd, &newProposalArgs.Url)
	senderFlag(newProposalCmd, &newProposalArgs.Sender)
	newProposalCmd.Flags().StringVarP(&newProposalArgs.DAO, "dao", "", "", "dao id")
	newProposalCmd.Flags().Uint64VarP(&newProposalArgs.Kind, "kind", "k", uint64(types.KindGeneral), "1 general, 2 impeachment, 3 dao creation")
	newProposalCmd.Flags().StringVarP(&newProposalArgs.Title, "title", "t", "", "proposal title")
	newProposalCmd.Flags().StringVarP(&newProposalArgs.Description, "desc", "", "", "proposal description")
	newProposalCmd.Flags().StringVarP(&newProposalArgs.DAOName, "daoname", "", "", "proposed dao name (dao creation)")
	newProposalCmd.Flags().StringVarP(&newProposalArgs.OPCandidate, "candidate", "", "", "initial operator candidate (dao creation)")
	newProposalCmd.Flags().StringVarP(&newProposalArgs.Target, "target", "", "", "target operator (impeachment)")
}

func newProposalRun(cmd *cobra.Command, args []string) {
	postCommand(newProposalArgs.Url, newProposalArgs.Sender, command.CommandTypeSubmitProposal, command.SubmitProposalCmd{
		DAOId:              newProposalArgs.DAO,
		Kind:               types.ProposalKind(newProposalArgs.Kind),
		Title:              newProposalArgs.Title,
		Description:        newProposalArgs.Description,
		ProposedDAOName:    newProposalArgs.DAOName,
		InitialOPCandidate: newProposalArgs.OPCandidate,
		TargetOperator:     newProposalArgs.Target,
	})
}

type fundingArguments struct {
	Url      string
	Sender   string
	Proposal string
	Amount   uint64
}

var payStakeArgs fundingArguments

var payStakeCmd = &cobra.Command{
	Use:   "paystake",
	Short: "Pay proposer stake on a funding-stage proposal",
	Long:  ``,
	Run:   payStakeRun,
}

func init() {
	urlFlag(payStakeCmd, &payStakeArgs.Url)
	senderFlag(payStakeCmd, &payStakeArgs.Sender)
	payStakeCmd.Flags().StringVarP(&payStakeArgs.Proposal, "proposal", "p", "", "proposal id")
	payStakeCmd.Flags().Uint64VarP(&payStakeArgs.Amount, "amount", "a", 1, "stake amount")
}

func payStakeRun(cmd *cobra.Command, args []string) {
	postCommand(payStakeArgs.Url, payStakeArgs.Sender, command.CommandTypePayStake, command.PayStakeCmd{
		Proposal: payStakeArgs.Proposal,
		Amount:   payStakeArgs.Amount,
	})
}

var endorseArgs fundingArguments

var endorseCmd = &cobra.Command{
	Use:   "endorse",
	Short: "Endorse a funding-stage proposal",
	Long:  ``,
	Run:   endorseRun,
}

func init() {
	urlFlag(endorseCmd, &endorseArgs.Url)
	senderFlag(endorseCmd, &endorseArgs.Sender)
	endorseCmd.Flags().StringVarP(&endorseArgs.Proposal, "proposal", "p", "", "proposal id")
	endorseCmd.Flags().Uint64VarP(&endorseArgs.Amount, "amount", "a", 1, "endorsement weight")
}

func endorseRun(cmd *cobra.Command, args []string) {
	postCommand(endorseArgs.Url, endorseArgs.Sender, command.CommandTypeEndorse, command.EndorseCmd{
		Proposal: endorseArgs.Proposal,
		Amount:   endorseArgs.Amount,
	})
}

var enterVotingArgs fundingArguments

var enterVotingCmd = &cobra.Command{
	Use:   "entervoting",
	Short: "Signal that the funding threshold was met",
	Long:  ``,
	Run:   enterVotingRun,
}

func init() {
	urlFlag(enterVotingCmd, &enterVotingArgs.Url)
	senderFlag(enterVotingCmd, &enterVotingArgs.Sender)
	enterVotingCmd.Flags().StringVarP(&enterVotingArgs.Proposal, "proposal", "p", "", "proposal id")
}

func enterVotingRun(cmd *cobra.Command, args []string) {
	postCommand(enterVotingArgs.Url, enterVotingArgs.Sender, command.CommandTypeEnterVoting, command.EnterVotingCmd{
		Proposal: enterVotingArgs.Proposal,
	})
}
