package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepretrieve/deepretrieve/internal/api"
	"github.com/deepretrieve/deepretrieve/internal/monitor"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := api.NewClient(cfg.BackendURL)
		mon := monitor.New(client, cfg.PollInterval, cfg.PingTimeout)

		if mon.Retry(cmd.Context()) == monitor.StatusOnline {
			fmt.Printf("Backend %s is online.\n", cfg.BackendURL)
			return nil
		}
		return fmt.Errorf("backend %s is offline", cfg.BackendURL)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
