package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ppiankov/rassert"
	"github.com/ppiankov/rassert/internal/config"
	"github.com/ppiankov/rassert/internal/probe"
	"github.com/ppiankov/rassert/internal/trap"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check debugger readiness and diagnose configuration issues",
	RunE:  runDoctor,
}

type checkResult struct {
	label  string
	ok     bool
	detail string
	fix    string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	checks := doctorChecks(configPath)
	if printChecks(cmd.OutOrStdout(), checks) {
		return fmt.Errorf("doctor found issues")
	}
	return nil
}

func doctorChecks(path string) []checkResult {
	var checks []checkResult

	checks = append(checks, checkResult{
		label:  "platform",
		ok:     true,
		detail: fmt.Sprintf("%s/%s, trap %s", runtime.GOOS, runtime.GOARCH, trap.Kind()),
	})

	// Informational only: doctor usually runs outside a debugger.
	if probe.Attached() {
		checks = append(checks, checkResult{label: "debugger", ok: true, detail: "attached"})
	} else {
		checks = append(checks, checkResult{
			label:  "debugger",
			ok:     true,
			detail: "not attached, failed assertions will abort",
		})
	}

	if dlv, err := exec.LookPath("dlv"); err == nil {
		checks = append(checks, checkResult{label: "dlv", ok: true, detail: dlv})
	} else {
		checks = append(checks, checkResult{
			label:  "dlv",
			ok:     false,
			detail: "not on PATH",
			fix:    "go install github.com/go-delve/delve/cmd/dlv@latest",
		})
	}

	if rassert.Enabled {
		checks = append(checks, checkResult{label: "build gate", ok: true, detail: "assertions compiled in"})
	} else {
		checks = append(checks, checkResult{
			label:  "build gate",
			ok:     false,
			detail: "assertions compiled out",
			fix:    "go build -tags debug",
		})
	}

	cfg, err := config.Load(path)
	if err != nil {
		checks = append(checks, checkResult{
			label:  "config",
			ok:     false,
			detail: err.Error(),
			fix:    "rassert config check",
		})
		return checks
	}
	detail := "defaults (no file at " + config.ResolvePath(path) + ")"
	if cfg.Path != "" {
		detail = fmt.Sprintf("%s (variant %s, format %s)", cfg.Path, cfg.Variant, cfg.Format)
	}
	checks = append(checks, checkResult{label: "config", ok: true, detail: detail})

	if cfg.Journal != "" {
		if err := checkWritable(cfg.Journal); err != nil {
			checks = append(checks, checkResult{
				label:  "journal",
				ok:     false,
				detail: err.Error(),
				fix:    "mkdir -p " + filepath.Dir(cfg.Journal),
			})
		} else {
			checks = append(checks, checkResult{label: "journal", ok: true, detail: cfg.Journal})
		}
	}

	return checks
}

// checkWritable opens path for append without truncating an existing journal.
func checkWritable(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	return f.Close()
}

// printChecks writes one line per check and reports whether any failed.
func printChecks(w io.Writer, checks []checkResult) bool {
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()
	hint := color.New(color.FgYellow).SprintFunc()

	hasFailures := false
	for _, c := range checks {
		mark := pass("✓")
		if !c.ok {
			mark = fail("✗")
			hasFailures = true
		}
		line := fmt.Sprintf("%s %-12s %s", mark, c.label+":", c.detail)
		if !c.ok && c.fix != "" {
			line += "  ->  " + hint(c.fix)
		}
		fmt.Fprintln(w, line)
	}

	if hasFailures {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Some checks failed. Run the suggested commands to fix.")
	}
	return hasFailures
}
