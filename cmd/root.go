package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pollux-motors/showroom/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "showroom",
	Short: "Pollux Motors catalog, comparison and search engine",
	Long:  "Imports the vehicle catalog, compares cars side by side with best and worst highlighting, ranks search results, and serves the showroom API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
