package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/hausbot/internal/ranking"
)

// TableCmd returns the table command, which prints the ranking document
// without going through the chat platform.
func TableCmd() *cobra.Command {
	var dataDir string
	var all bool

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the schika ranking table",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := ranking.NewStore(filepath.Join(dataDir, "schika.json"))
			tbl, err := store.Load()
			if err != nil {
				return err
			}

			header := color.New(color.FgCyan, color.Bold)
			header.Println("Schika")

			for _, e := range ranking.Sorted(tbl) {
				fmt.Printf("%-20s %s\n", e.Name, color.GreenString("%d", e.Score))
			}
			if all {
				dim := color.New(color.Faint)
				for name, rec := range tbl {
					if !rec.Active {
						dim.Printf("%-20s %d (versteckt)\n", name, rec.Score)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "data", "data directory")
	cmd.Flags().BoolVar(&all, "all", false, "include hidden players")
	return cmd
}
