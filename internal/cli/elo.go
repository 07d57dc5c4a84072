package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/hausbot/internal/elo"
)

// EloCmd returns the elo command for offline rating computation.
func EloCmd() *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "elo <x> <y> <outcome>",
		Short: "Compute a rating update (outcome: 0 draw, 1 first wins, 2 second wins)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}
			outcome, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("outcome: %w", err)
			}

			nx, ny, err := elo.Update(x, y, outcome, k)
			if err != nil {
				return err
			}
			fmt.Printf("x: %d\ny: %d\n", nx, ny)
			return nil
		},
	}

	cmd.Flags().IntVar(&k, "k", elo.DefaultK, "k-factor")
	return cmd
}
