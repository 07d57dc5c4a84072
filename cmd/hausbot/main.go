package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/hausbot/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hausbot",
		Short: "hausbot - home operations chat bot",
		Long: `hausbot serves the household slash commands: the schika ranking
table, trivia rounds, presence reports and broadcasts, plus the JSON
snapshot endpoints the dashboard reads.`,
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.TableCmd())
	rootCmd.AddCommand(cli.EloCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
