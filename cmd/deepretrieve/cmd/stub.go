package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deepretrieve/deepretrieve/internal/stub"
)

var flagStubAddr string

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local stand-in for the backend",
	Long: `Serve the backend wire contract with canned retrieval results so the
client can be developed and demoed without the real service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return stub.New(logger).ListenAndServe(flagStubAddr)
	},
}

func init() {
	stubCmd.Flags().StringVar(&flagStubAddr, "addr", ":8000", "listen address")
	rootCmd.AddCommand(stubCmd)
}
