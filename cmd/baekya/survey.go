package main

import (
	"github.com/baekya-protocol/baekya-protocol-sub000/command"
	"github.com/spf13/cobra"
)

type surveyArguments struct {
	Url    string
	Sender string
	DAO    string
	Survey string
	Vote   string
	Action string
}

var surveyArgs surveyArguments

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Operator confidence surveys: conduct, vote, conclude",
	Long:  ``,
	Run:   surveyRun,
}

func init() {
	urlFlag(surveyCmd, &surveyArgs.Url)
	senderFlag(surveyCmd, &surveyArgs.Sender)
	surveyCmd.Flags().StringVarP(&surveyArgs.Action, "action", "", "conduct", "conduct | vote | conclude")
	surveyCmd.Flags().StringVarP(&surveyArgs.DAO, "dao", "", "", "dao id (conduct)")
	surveyCmd.Flags().StringVarP(&surveyArgs.Survey, "survey", "", "", "survey id (vote, conclude)")
	surveyCmd.Flags().StringVarP(&surveyArgs.Vote, "vote", "", "support", "support | neutral | oppose (vote)")
}

func surveyRun(cmd *cobra.Command, args []string) {
	switch surveyArgs.Action {
	case "vote":
		postCommand(surveyArgs.Url, surveyArgs.Sender, command.CommandTypeVoteSurvey, command.VoteSurveyCmd{
			Survey: surveyArgs.Survey,
			Vote:   surveyArgs.Vote,
		})
	case "conclude":
		postCommand(surveyArgs.Url, surveyArgs.Sender, command.CommandTypeConcludeSurvey, command.ConcludeSurveyCmd{
			Survey: surveyArgs.Survey,
		})
	default:
		postCommand(surveyArgs.Url, surveyArgs.Sender, command.CommandTypeConductSurvey, command.ConductSurveyCmd{
			DAO: surveyArgs.DAO,
		})
	}
}
