package main

import (
	"github.com/baekya-protocol/baekya-protocol-sub000/command"
	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	"github.com/spf13/cobra"
)

type opDecisionArguments struct {
	Url      string
	Sender   string
	Proposal string
	Approve  bool
	Comment  string
}

var opDecisionArgs opDecisionArguments

var opDecisionCmd = &cobra.Command{
	Use:   "opdecision",
	Short: "Record the DAO operator's first-tier review decision",
	Long:  ``,
	Run:   opDecisionRun,
}

func init() {
	urlFlag(opDecisionCmd, &opDecisionArgs.Url)
	senderFlag(opDecisionCmd, &opDecisionArgs.Sender)
	opDecisionCmd.Flags().StringVarP(&opDecisionArgs.Proposal, "proposal", "p", "", "proposal id")
	opDecisionCmd.Flags().BoolVarP(&opDecisionArgs.Approve, "approve", "a", false, "approve instead of reject")
	opDecisionCmd.Flags().StringVarP(&opDecisionArgs.Comment, "comment", "c", "", "review comment")
}

func opDecisionRun(cmd *cobra.Command, args []string) {
	decision := types.DecisionReject
	if opDecisionArgs.Approve {
		decision = types.DecisionApprove
	}
	postCommand(opDecisionArgs.Url, opDecisionArgs.Sender, command.CommandTypeRecordOPDecision, command.RecordOPDecisionCmd{
		Proposal: opDecisionArgs.Proposal,
		Decision: decision,
		Comment:  opDecisionArgs.Comment,
	})
}

type objectionArguments struct {
	Url      string
	Sender   string
	Proposal string
	Reason   string
	Details  string
}

var objectionArgs objectionArguments

var objectionCmd = &cobra.Command{
	Use:   "objection",
	Short: "File an objection during the objection window",
	Long:  ``,
	Run:   objectionRun,
}

func init() {
	urlFlag(objectionCmd, &objectionArgs.Url)
	senderFlag(objectionCmd, &objectionArgs.Sender)
	objectionCmd.Flags().StringVarP(&objectionArgs.Proposal, "proposal", "p", "", "proposal id")
	objectionCmd.Flags().StringVarP(&objectionArgs.Reason, "reason", "r", "", "objection reason")
	objectionCmd.Flags().StringVarP(&objectionArgs.Details, "details", "", "", "objection details")
}

func objectionRun(cmd *cobra.Command, args []string) {
	postCommand(objectionArgs.Url, objectionArgs.Sender, command.CommandTypeSubmitObjection, command.SubmitObjectionCmd{
		Proposal: objectionArgs.Proposal,
		Reason:   objectionArgs.Reason,
		Details:  objectionArgs.Details,
	})
}

type finalDecideArguments struct {
	Url      string
	Sender   string
	Proposal string
	Approve  bool
	Reason   string
	Adopted  []string
}

var finalDecideArgs finalDecideArguments

var finalDecideCmd = &cobra.Command{
	Use:   "finaldecide",
	Short: "Record the top operator's terminal decision",
	Long:  ``,
	Run:   finalDecideRun,
}

func init() {
	urlFlag(finalDecideCmd, &finalDecideArgs.Url)
	senderFlag(finalDecideCmd, &finalDecideArgs.Sender)
	finalDecideCmd.Flags().StringVarP(&finalDecideArgs.Proposal, "proposal", "p", "", "proposal id")
	finalDecideCmd.Flags().BoolVarP(&finalDecideArgs.Approve, "approve", "a", false, "approve instead of reject")
	finalDecideCmd.Flags().StringVarP(&finalDecideArgs.Reason, "reason", "r", "", "decision reason")
	finalDecideCmd.Flags().StringSliceVarP(&finalDecideArgs.Adopted, "adopt", "", nil, "objection ids to adopt (reject only)")
}

func finalDecideRun(cmd *cobra.Command, args []string) {
	decision := types.DecisionReject
	if finalDecideArgs.Approve {
		decision = types.DecisionApprove
	}
	postCommand(finalDecideArgs.Url, finalDecideArgs.Sender, command.CommandTypeFinalDecide, command.FinalDecideCmd{
		Proposal:            finalDecideArgs.Proposal,
		Decision:            decision,
		Reason:              finalDecideArgs.Reason,
		AdoptedObjectionIds: finalDecideArgs.Adopted,
	})
}
