package main

import (
	"fmt"
	"os"
)

func main() {
	clCmd.AddCommand(initCmd)
	clCmd.AddCommand(versionCmd)
	clCmd.AddCommand(newProposalCmd)
	clCmd.AddCommand(payStakeCmd)
	clCmd.AddCommand(endorseCmd)
	clCmd.AddCommand(enterVotingCmd)
	clCmd.AddCommand(voteCmd)
	clCmd.AddCommand(opDecisionCmd)
	clCmd.AddCommand(objectionCmd)
	clCmd.AddCommand(finalDecideCmd)
	clCmd.AddCommand(successionCmd)
	clCmd.AddCommand(surveyCmd)
	clCmd.AddCommand(proposalsCmd)
	clCmd.AddCommand(statusCmd)
	if err := clCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
