package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"lieferplaner/internal/records"
)

var recordsAll bool

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect and import work-item records",
}

var recordsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List monitored records with their due-date urgency",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs := app.records.Load()
		shown := printRecords(cmd.OutOrStdout(), recs, time.Now(), recordsAll)
		if shown == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d record(s)\n", shown)
		return nil
	},
}

var recordsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the stored records with a JSON array of records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		recs, err := records.Decode(raw)
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		if err := app.records.Save(recs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s) into %s\n", len(recs), app.records.Path())
		return nil
	},
}

// printRecords writes one line per record and returns how many it wrote.
// Without all only monitored records are listed.
func printRecords(w io.Writer, recs []records.WorkItemRecord, today time.Time, all bool) int {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	n := 0
	for _, r := range recs {
		if !all && !r.Monitored() {
			continue
		}
		if n == 0 {
			fmt.Fprintln(tw, "BA\tBELEG\tARTIKEL\tSTATUS\tDUE\tURGENCY")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			orDash(r.WorkOrderRef), orDash(r.DocumentRef), orDash(r.ArticleRef),
			orDash(string(r.OpenStatusCode)), orDash(r.DueDate), urgencyLabel(r, today))
		n++
	}
	tw.Flush()
	return n
}

func urgencyLabel(r records.WorkItemRecord, today time.Time) string {
	switch {
	case bool(r.Done):
		return "done"
	case bool(r.Arrived):
		return "arrived"
	}
	u, days, ok := records.DueDateUrgency(r.DueDate, today)
	if !ok {
		return "-"
	}
	switch u {
	case records.Overdue:
		return fmt.Sprintf("%s (%dd)", u, -days)
	case records.DueSoon:
		return fmt.Sprintf("%s (in %dd)", u, days)
	default:
		return u.String()
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	recordsListCmd.Flags().BoolVarP(&recordsAll, "all", "a", false, "Include done, arrived and irrelevant records")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsImportCmd)
	RootCmd.AddCommand(recordsCmd)
}
