package main

import (
	"github.com/spf13/cobra"
)

type queryArguments struct {
	Url      string
	Proposal string
	DAO      string
	Page     int
	PageSize int
}

var proposalsArgs queryArguments

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "Query proposals from the indexer",
	Long:  ``,
	Run:   proposalsRun,
}

func init() {
	urlFlag(proposalsCmd, &proposalsArgs.Url)
	proposalsCmd.Flags().StringVarP(&proposalsArgs.Proposal, "proposal", "p", "", "proposal id")
	proposalsCmd.Flags().StringVarP(&proposalsArgs.DAO, "dao", "", "", "dao id")
	proposalsCmd.Flags().IntVarP(&proposalsArgs.Page, "page", "", 0, "page")
	proposalsCmd.Flags().IntVarP(&proposalsArgs.PageSize, "pagesize", "", 20, "page size")
}

func proposalsRun(cmd *cobra.Command, args []string) {
	postQuery(proposalsArgs.Url, "/getProposals", map[string]any{
		"proposalId": proposalsArgs.Proposal,
		"daoId":      proposalsArgs.DAO,
		"page":       proposalsArgs.Page,
		"pageSize":   proposalsArgs.PageSize,
	})
}

var statusArgs queryArguments

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query engine status",
	Long:  ``,
	Run:   statusRun,
}

func init() {
	urlFlag(statusCmd, &statusArgs.Url)
}

func statusRun(cmd *cobra.Command, args []string) {
	postQuery(statusArgs.Url, "/status", map[string]any{})
}
