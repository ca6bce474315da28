package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rassert"
	"github.com/ppiankov/rassert/internal/protocol"
)

var (
	demoVariant string
	demoSite    int
	demoRounds  int
)

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVar(&demoVariant, "variant", "", "Protocol variant (retry|single); overrides config")
	demoCmd.Flags().IntVar(&demoSite, "site", 0, "Fire only demo site N (1-3); 0 fires all")
	demoCmd.Flags().IntVar(&demoRounds, "rounds", 2, "Times each site is fired, to show suppression")
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Fire failing assertions to practise the debugger protocol",
	Long: "Runs three deliberately failing assertions through the configured protocol.\n" +
		"Start it under Delve (dlv exec ./rassert -- demo) and answer each trap.\n" +
		"Without a debugger the first failure aborts the process.",
	Args: cobra.NoArgs,
	RunE: runDemo,
}

var errCompiledOut = errors.New("assertions are compiled out; rebuild with -tags debug")

func runDemo(cmd *cobra.Command, args []string) error {
	if !rassert.Enabled {
		return errCompiledOut
	}
	if demoSite < 0 || demoSite > len(demoSites) {
		return fmt.Errorf("--site must be between 0 and %d", len(demoSites))
	}

	var opts []rassert.Option
	if demoVariant != "" {
		v, err := protocol.ParseVariant(demoVariant)
		if err != nil {
			return err
		}
		opts = append(opts, rassert.WithVariant(v))
	}

	a, err := rassert.NewFromConfig(configPath, opts...)
	if err != nil {
		return err
	}
	defer a.Close()

	return fireDemo(cmd.OutOrStdout(), a, demoSite, demoRounds)
}

var demoSites = []struct {
	name string
	fire func(a *rassert.Asserter, round int)
}{
	{"queue bound", func(a *rassert.Asserter, round int) {
		queued, capacity := 12, 8
		a.That(queued <= capacity)
	}},
	{"retry budget", func(a *rassert.Asserter, round int) {
		attempts := 3 + round
		a.Thatf(attempts < 3, "round %d used %d attempts", round, attempts)
	}},
	{"checksum", func(a *rassert.Asserter, round int) {
		payload := []byte("rassert")
		a.Func(func() bool { return checksum(payload) == 0 })
	}},
}

func checksum(b []byte) byte {
	var sum byte
	for _, c := range b {
		sum ^= c
	}
	return sum
}

func fireDemo(w io.Writer, a *rassert.Asserter, only, rounds int) error {
	fmt.Fprintf(w, "variant: %s\n", a.Variant())
	for round := 1; round <= rounds; round++ {
		for i, s := range demoSites {
			if only != 0 && only != i+1 {
				continue
			}
			fmt.Fprintf(w, "round %d, site %d (%s)\n", round, i+1, s.name)
			s.fire(a, round)
		}
	}

	fmt.Fprintln(w)
	for _, s := range a.Sites() {
		state := "armed"
		if s.Disabled || a.AllDisabled() {
			state = "disabled"
		}
		fmt.Fprintf(w, "%-8s %s\n", state, s.Key)
	}
	return nil
}
