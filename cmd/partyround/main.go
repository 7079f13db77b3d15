package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/meverselabs/partyround/cmd/config"
	"github.com/meverselabs/partyround/common/rlog"
	"github.com/meverselabs/partyround/service/apiserver/viewchain"
)

func main() {
	var cfgPath string
	var envPath string
	var hostURL string
	rootCmd := &cobra.Command{
		Use:     "partyround",
		Short:   "runs and drives a party round node",
		Version: viewchain.GetVersion(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnv(envPath)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "cfg", "./config.toml", "config file path (toml or yaml)")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "./.env", "dotenv file path")
	rootCmd.PersistentFlags().StringVar(&hostURL, "host", "http://localhost:48000", "url of the node to access")

	rootCmd.AddCommand(serveCommand(&cfgPath))
	rootCmd.AddCommand(stateCommand(&cfgPath))
	rootCmd.AddCommand(keyCommand())
	rootCmd.AddCommand(callCommand(&hostURL))
	rootCmd.AddCommand(sendCommand(&hostURL))
	if err := rootCmd.Execute(); err != nil {
		rlog.Sync()
		os.Exit(1)
	}
}
