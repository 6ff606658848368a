package main

import (
	"github.com/baekya-protocol/baekya-protocol-sub000/command"
	"github.com/spf13/cobra"
)

type successionArguments struct {
	Url    string
	Sender string
	DAO    string
	Accept bool
}

var successionArgs successionArguments

var successionCmd = &cobra.Command{
	Use:   "succession",
	Short: "Respond to a pending operator succession offer",
	Long:  ``,
	Run:   successionRun,
}

func init() {
	urlFlag(successionCmd, &successionArgs.Url)
	senderFlag(successionCmd, &successionArgs.Sender)
	successionCmd.Flags().StringVarP(&successionArgs.DAO, "dao", "", "", "dao id")
	successionCmd.Flags().BoolVarP(&successionArgs.Accept, "accept", "a", false, "accept instead of reject")
}

func successionRun(cmd *cobra.Command, args []string) {
	postCommand(successionArgs.Url, successionArgs.Sender, command.CommandTypeRespondSuccession, command.RespondSuccessionCmd{
		DAO:    successionArgs.DAO,
		Accept: successionArgs.Accept,
	})
}
