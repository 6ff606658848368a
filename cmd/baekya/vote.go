package main

import (
	"github.com/baekya-protocol/baekya-protocol-sub000/command"
	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	"github.com/spf13/cobra"
)

type voteArguments struct {
	Url      string
	Sender   string
	Proposal string
	Choice   uint64
}

var voteArgs voteArguments

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Cast a vote on a proposal in the voting stage",
	Long:  ``,
	Run:   voteRun,
}

func init() {
	urlFlag(voteCmd, &voteArgs.Url)
	senderFlag(voteCmd, &voteArgs.Sender)
	voteCmd.Flags().StringVarP(&voteArgs.Proposal, "proposal", "p", "", "proposal id")
	voteCmd.Flags().Uint64VarP(&voteArgs.Choice, "choice", "c", uint64(types.VoteChoiceFor), "1 for, 2 against, 3 abstain")
}

func voteRun(cmd *cobra.Command, args []string) {
	postCommand(voteArgs.Url, voteArgs.Sender, command.CommandTypeCastVote, command.CastVoteCmd{
		Proposal: voteArgs.Proposal,
		Choice:   types.VoteChoice(voteArgs.Choice),
	})
}
