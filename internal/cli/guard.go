package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faizan711/git-gandalf/internal/diff"
	"github.com/Faizan711/git-gandalf/internal/guard"
	"github.com/Faizan711/git-gandalf/internal/llm"
)

var guardCmd = &cobra.Command{
	Use:   "guard [-]",
	Short: "Judge the pending diff and gate the commit",
	Long: `Send the staged diff to the model for a risk judgment and enforce the
result through the exit code. Pass "-" to read a diff from stdin instead
of the git index.

Exit codes:
  0 — ALLOW or WARN (or nothing to review, or reviewer unreachable)
  1 — BLOCK, oversized input, or an unusable model reply`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGuard,
}

func init() {
	guardCmd.Flags().String("base-url", "", "model endpoint base URL")
	guardCmd.Flags().String("model", "", "fallback model identifier")
	guardCmd.Flags().Int("timeout-ms", 0, "total deadline for the model exchange")
	guardCmd.Flags().Int("max-diff-bytes", 0, "maximum diff size before aborting")
	guardCmd.Flags().BoolP("quiet", "q", false, "print only the verdict line")
}

func runGuard(cmd *cobra.Command, args []string) error {
	cfg := configFromFlags(cmd)
	quiet, _ := cmd.Flags().GetBool("quiet")

	raw, err := collectDiff(args, cfg.MaxDiffBytes)
	if err != nil {
		// fail closed: oversized input and stream errors block
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

	printOutcome(out, quiet)
	exitCode = out.ExitCode()
	return nil
}

// configFromFlags layers flag values over environment configuration.
func configFromFlags(cmd *cobra.Command) llm.Config {
	cfg := llm.LoadConfig()

	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Model = v
	}
	if v, _ := cmd.Flags().GetInt("timeout-ms"); v > 0 {
		cfg.TimeoutMs = v
	}
	if v, _ := cmd.Flags().GetInt("max-diff-bytes"); v > 0 {
		cfg.MaxDiffBytes = v
	}

	return cfg
}

// collectDiff reads the diff from stdin when "-" is passed, otherwise
// from the git index. Both paths go through the size guard.
func collectDiff(args []string, maxBytes int) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		return guard.Collect(os.Stdin, maxBytes)
	}

	repoDir, err := diff.GitRepoRoot()
	if err != nil {
		return "", fmt.Errorf("not in a git repository (or git not installed): %w", err)
	}

	staged, err := diff.GitDiffStaged(repoDir)
	if err != nil {
		return "", err
	}
	return guard.Collect(strings.NewReader(staged), maxBytes)
}
