package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Faizan711/git-gandalf/internal/diff"
	"github.com/Faizan711/git-gandalf/internal/guard"
	"github.com/Faizan711/git-gandalf/internal/llm"
	"github.com/Faizan711/git-gandalf/internal/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review [-]",
	Short: "Judge the pending diff and inspect the result interactively",
	Long: `Run the same judgment as "guard", then open a terminal UI showing the
verdict, the issues found, and the diff itself. Pass "-" to read a diff
from stdin. The exit code follows the guard contract, so this can stand
in for guard anywhere a terminal is attached.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().String("base-url", "", "model endpoint base URL")
	reviewCmd.Flags().String("model", "", "fallback model identifier")
	reviewCmd.Flags().Int("timeout-ms", 0, "total deadline for the model exchange")
	reviewCmd.Flags().Int("max-diff-bytes", 0, "maximum diff size before aborting")
	reviewCmd.Flags().Bool("plain", false, "print the outcome instead of opening the UI")
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg := configFromFlags(cmd)

	raw, err := collectDiff(args, cfg.MaxDiffBytes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gandalf: %v\n", err)
		exitCode = 1
		return nil
	}

	out, err := guard.Run(cmd.Context(), raw, llm.NewClient(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "gandalf: %v\n", err)
		exitCode = 1
		return nil
	}
	exitCode = out.ExitCode()

	plain, _ := cmd.Flags().GetBool("plain")
	if plain || out.Empty || !isatty.IsTerminal(os.Stdout.Fd()) {
		printOutcome(out, false)
		return nil
	}

	ds, parseErr := diff.Parse(diff.NormalizeLineEndings(raw))
	if parseErr != nil || len(ds.Files) == 0 {
		// diff too mangled for the structured view; the verdict stands
		printOutcome(out, false)
		return nil
	}

	if err := tui.Run(out, ds); err != nil {
		printOutcome(out, false)
		return fmt.Errorf("starting UI: %w", err)
	}
	return nil
}
