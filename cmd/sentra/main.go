package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sentra-pos/sentra/internal/interfaces/cli/migrate"
	"github.com/sentra-pos/sentra/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sentra",
		Short: "Sentra - multi-tenant POS backend",
		Long:  `Sentra is the multi-tenant point-of-sale backend with subscription entitlement management, built-in server, and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
