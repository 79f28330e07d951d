package clirelayer

import (
	"os"
	"os/signal"
	"syscall"

	loggerInfra "github.com/Ethernal-Tech/cardano-infrastructure/logger"
	"github.com/Vikakfuse/star-craft/common"
	relayerCore "github.com/Vikakfuse/star-craft/relayer/core"
	"github.com/Vikakfuse/star-craft/relayer/relayer_manager"
	"github.com/spf13/cobra"
)

var initParamsData = &initParams{}

func GetRunRelayerCommand() *cobra.Command {
	runRelayerCmd := &cobra.Command{
		Use:     "run-relayer",
		Short:   "runs relayer component",
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	initParamsData.setFlags(runRelayerCmd)

	return runRelayerCmd
}

func runPreRun(_ *cobra.Command, _ []string) error {
	return initParamsData.validateFlags()
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := common.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	config, err := common.LoadConfig[relayerCore.RelayerManagerConfiguration](initParamsData.config, "relayer")
	if err != nil {
		outputter.SetError(err)

		return
	}

	logger, err := loggerInfra.NewLogger(config.Logger)
	if err != nil {
		outputter.SetError(err)

		return
	}

	relayerManager, err := relayer_manager.NewRelayerManager(config, logger)
	if err != nil {
		logger.Error("relayer manager creation failed", "err", err)
		outputter.SetError(err)

		return
	}

	err = relayerManager.Start()
	if err != nil {
		logger.Error("relayer manager start failed", "err", err)
		outputter.SetError(err)

		return
	}

	defer relayerManager.Stop()

	signalChannel := make(chan os.Signal, 1)
	// Notify the signalChannel when the interrupt signal is received (Ctrl+C)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	<-signalChannel

	outputter.SetCommandResult(&CmdResult{})
}
