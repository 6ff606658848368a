package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	app_config "github.com/baekya-protocol/baekya-protocol-sub000/config"
	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	cmtos "github.com/cometbft/cometbft/libs/os"
	"github.com/spf13/cobra"
)

type printInfo struct {
	ChainID     string `json:"chain_id" yaml:"chain_id"`
	GenesisFile string `json:"genesis_file" yaml:"genesis_file"`
	ConfigFile  string `json:"config_file" yaml:"config_file"`
	DAOs        int    `json:"daos" yaml:"daos"`
}

func displayInfo(info printInfo) error {
	out, err := json.MarshalIndent(info, "", " ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(os.Stderr, "%s\n", out)

	return err
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize genesis and application configuration files",
	Long:  `Write the default config.toml and a genesis.json seeding the default DAOs with an initial operator.`,
	Args:  cobra.ExactArgs(0),
	RunE:  initRun,
}

func init() {
	initCmd.Flags().BoolP(types.FlagOverwrite, "o", false, "overwrite the genesis.json file")
	initCmd.Flags().String(types.FlagChainID, "", "genesis file chain-id, if left blank will be randomly created")
	initCmd.Flags().String(types.FlagHome, "", "home directory")
	initCmd.Flags().String(types.FlagOperator, "founder", "initial operator member id")
}

func initRun(cmd *cobra.Command, args []string) error {
	home, _ := cmd.Flags().GetString(types.FlagHome)
	chainID, _ := cmd.Flags().GetString(types.FlagChainID)
	operator, _ := cmd.Flags().GetString(types.FlagOperator)
	overwrite, _ := cmd.Flags().GetBool(types.FlagOverwrite)

	if chainID == "" {
		chainID = fmt.Sprintf("baekya-%v", rand.Uint64())
	}

	appConfig := app_config.DefaultConfig(home)
	genFile := appConfig.GenesisFile()
	if cmtos.FileExists(genFile) && !overwrite {
		return fmt.Errorf("genesis file already exists: %v", genFile)
	}

	genesis := &types.GenesisDoc{
		GenesisTime:     time.Now(),
		ChainID:         chainID,
		DAOs:            types.DefaultGenesisDAOs(),
		InitialOperator: operator,
		OperatorGrant:   types.InitialOperatorGrant,
	}
	if err := genesis.ValidateAndComplete(); err != nil {
		return err
	}
	if err := types.ExportGenesisFile(genesis, genFile); err != nil {
		return fmt.Errorf("failed to export genesis file %v", err)
	}
	app_config.WriteConfigFile(appConfig.ConfigFile(), appConfig)
	return displayInfo(printInfo{
		ChainID:     chainID,
		GenesisFile: genFile,
		ConfigFile:  appConfig.ConfigFile(),
		DAOs:        len(genesis.DAOs),
	})
}
