package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rassert/internal/journal"
)

var (
	showSession string
	showSite    string
	showFrom    string
	showTo      string
	showJSON    bool
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalVerifyCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalShowCmd.Flags().StringVar(&showSession, "session", "", "Only entries from this session id")
	journalShowCmd.Flags().StringVar(&showSite, "site", "", "Only entries for this file:line (suffix match)")
	journalShowCmd.Flags().StringVar(&showFrom, "from", "", "Start time filter (RFC3339)")
	journalShowCmd.Flags().StringVar(&showTo, "to", "", "End time filter (RFC3339)")
	journalShowCmd.Flags().BoolVar(&showJSON, "json", false, "Print entries and summary as JSON")
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Failure journal operations",
	Long:  "Commands for verifying and inspecting the hash-chained failure journal.",
}

var journalVerifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Verify hash chain integrity of a journal",
	Long:  "Walks the JSONL journal and validates that every entry's prev_hash\nmatches the SHA-256 of the previous entry. Exits 0 if valid, 1 if tampered.",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalVerify,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Show failures and operator decisions as a timeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

func runJournalVerify(cmd *cobra.Command, args []string) error {
	result := journal.Verify(args[0])
	if result.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d entries verified\n", result.Lines)
		return nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "FAILED at line %d: %s\n", result.ErrorLine, result.Error)
	os.Exit(1)
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	filter := journal.ReplayFilter{Session: showSession, Site: showSite}

	if showFrom != "" {
		from, err := time.Parse(time.RFC3339, showFrom)
		if err != nil {
			return fmt.Errorf("invalid --from time %q: %w", showFrom, err)
		}
		filter.From = from
	}
	if showTo != "" {
		to, err := time.Parse(time.RFC3339, showTo)
		if err != nil {
			return fmt.Errorf("invalid --to time %q: %w", showTo, err)
		}
		filter.To = to
	}

	result, err := journal.Replay(args[0], filter)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if showJSON {
		out, err := journal.FormatJSON(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
		return nil
	}
	fmt.Fprint(w, journal.FormatTimeline(result))
	return nil
}
