package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baekya-protocol/baekya-protocol-sub000/agent"
	"github.com/baekya-protocol/baekya-protocol-sub000/command"
	app_config "github.com/baekya-protocol/baekya-protocol-sub000/config"
	"github.com/baekya-protocol/baekya-protocol-sub000/gov"
	"github.com/baekya-protocol/baekya-protocol-sub000/state"
	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	cmtconfig "github.com/cometbft/cometbft/config"
	cmtflags "github.com/cometbft/cometbft/libs/cli/flags"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var homeDir string

var clCmd = &cobra.Command{
	Use:   "baekya",
	Short: "Baekya governance engine",
	Long:  `DAO governance engine: proposals, voting, review cascade, collateral and operator succession.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	clCmd.Flags().StringVarP(&homeDir, "homedir", "d", "", "home directory")
}

func run(cmd *cobra.Command, args []string) {
	appConfig := app_config.DefaultConfig(homeDir)
	viper.SetConfigFile(appConfig.ConfigFile())

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Reading config: %v", err)
	}
	if err := viper.Unmarshal(appConfig); err != nil {
		log.Fatalf("Decoding config: %v", err)
	}
	if err := appConfig.ValidateBasic(); err != nil {
		log.Fatalf("Invalid configuration data: %v", err)
	}

	logger := cmtlog.NewTMLogger(cmtlog.NewSyncWriter(os.Stdout))
	logger, err := cmtflags.ParseLogLevel(appConfig.LogLevel, logger, cmtconfig.DefaultLogLevel)
	if err != nil {
		log.Fatalf("failed to parse log level: %v", err)
	}

	store, err := state.NewStore(appConfig.StoreDir(), logger)
	if err != nil {
		log.Fatalf("open store err:%v", err)
	}

	if !store.Initialized() {
		gen, err := types.LoadGenesisFile(appConfig.GenesisFile())
		if err != nil {
			log.Fatalf("load genesis err:%v", err)
		}
		if err := store.ApplyGenesis(gen, uuid.NewString, time.Now()); err != nil {
			log.Fatalf("apply genesis err:%v", err)
		}
		logger.Info("genesis applied", "chainId", gen.ChainID, "daos", len(gen.DAOs))
	}

	engine := gov.NewEngine(store, appConfig.Governance, logger)
	if err := engine.ResumeSuccessions(); err != nil {
		log.Fatalf("resume successions err:%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	indexer, err := agent.NewIndexer(logger, appConfig.IndexerFile(), engine.Events())
	if err != nil {
		log.Fatalf("new indexer err %s", err.Error())
	}
	go indexer.Start(ctx)

	poller := gov.NewPoller(engine, appConfig.Governance.PollInterval, logger)
	go poller.Start(ctx)

	dispatcher := command.NewDispatcher(engine, logger)
	service := agent.NewService(appConfig.ListenAddr, engine, dispatcher, indexer)
	go service.Start()

	defer func() {
		fmt.Println("shut down...")
		cancel()
		engine.Close()
		if err := indexer.Close(); err != nil {
			logger.Error("close indexer fail", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("close store fail", "err", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
