package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lieferplaner/internal/locator"
)

var (
	findOpen     bool
	findJSON     bool
	reindexForce bool
)

var findCmd = &cobra.Command{
	Use:   "find <position text...>",
	Short: "Find the STEP drawing for a position text",
	Long: `Find the STEP drawing for a position text.

The search key is the first TM number, else a run of at least seven digits,
else the first word. The catalog is rebuilt first when it is missing or was
built for a different drawing root.

Examples:
  lieferplaner find "Pos TM000195055 Hauptteil"
  lieferplaner find --open 1234567 Blech`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		res := app.locator.FindDrawing(text)

		if findJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		if !res.OK {
			fmt.Fprintf(cmd.OutOrStdout(), "No drawing found (%s)\n", res.Reason)
			if res.Reason == locator.ReasonNotFound {
				if s := app.locator.Suggest(text, 5); len(s) > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Similar file names:")
					for _, e := range s {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", e.Path)
					}
				}
			}
			return errors.New(string(res.Reason))
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Path)
		if findOpen && !app.locator.OpenDrawing(res.Path) {
			return errors.New("could not open " + res.Path)
		}
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a drawing in its default application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.locator.OpenDrawing(args[0]) {
			return errors.New("could not open " + args[0])
		}
		return nil
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Build the drawing catalog for the current drawing root",
	Long: `Build the drawing catalog for the current drawing root.

Without --force an existing catalog for the same root is kept. With --force the
persisted catalog is deleted and the whole root is walked again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.locator.Reindex(reindexForce) {
			return errors.New(string(locator.ReasonNotReady))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog ready for %s\n", app.locator.Root())
		return nil
	},
}

func init() {
	findCmd.Flags().BoolVar(&findOpen, "open", false, "Open the drawing after finding it")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "Print the lookup result as JSON")
	reindexCmd.Flags().BoolVarP(&reindexForce, "force", "f", false, "Discard the persisted catalog and walk again")

	RootCmd.AddCommand(findCmd)
	RootCmd.AddCommand(openCmd)
	RootCmd.AddCommand(reindexCmd)
}
