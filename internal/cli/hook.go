package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faizan711/git-gandalf/internal/diff"
)

const (
	hookMarkerStart = "# >>> gandalf pre-commit hook >>>"
	hookMarkerEnd   = "# <<< gandalf pre-commit hook <<<"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the git pre-commit hook",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install gandalf as a git pre-commit hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		hooksDir, err := diff.GitHooksDir()
		if err != nil {
			return err
		}
		hookPath := filepath.Join(hooksDir, "pre-commit")

		quiet, _ := cmd.Flags().GetBool("quiet")
		section := hookSection(quiet)

		existing, err := os.ReadFile(hookPath)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reading hook file: %w", err)
		}

		var content string
		if os.IsNotExist(err) || len(existing) == 0 {
			content = "#!/bin/sh\n" + section
		} else {
			content = replaceHookSection(string(existing), section)
		}

		if err := os.MkdirAll(hooksDir, 0o755); err != nil {
			return fmt.Errorf("creating hooks directory: %w", err)
		}
		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			return fmt.Errorf("writing hook file: %w", err)
		}

		fmt.Printf("Installed gandalf pre-commit hook at %s\n", hookPath)
		return nil
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the gandalf pre-commit hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		hooksDir, err := diff.GitHooksDir()
		if err != nil {
			return err
		}
		hookPath := filepath.Join(hooksDir, "pre-commit")

		existing, err := os.ReadFile(hookPath)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No pre-commit hook found.")
				return nil
			}
			return fmt.Errorf("reading hook file: %w", err)
		}

		content := removeHookSection(string(existing))

		// If only a shebang remains, delete the file entirely.
		trimmed := strings.TrimSpace(content)
		if trimmed == "" || trimmed == "#!/bin/sh" || trimmed == "#!/bin/bash" {
			if err := os.Remove(hookPath); err != nil {
				return fmt.Errorf("removing hook file: %w", err)
			}
			fmt.Printf("Removed gandalf pre-commit hook at %s\n", hookPath)
			return nil
		}

		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			return fmt.Errorf("writing hook file: %w", err)
		}
		fmt.Printf("Removed gandalf section from %s\n", hookPath)
		return nil
	},
}

func init() {
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
	hookInstallCmd.Flags().BoolP("quiet", "q", false, "install with verdict-only output")
}

// hookSection emits the marker-delimited script block. The staged diff is
// piped in explicitly so the hook behaves the same regardless of what git
// attaches to stdin.
func hookSection(quiet bool) string {
	guardArgs := "guard -"
	if quiet {
		guardArgs += " --quiet"
	}

	var b strings.Builder
	b.WriteString(hookMarkerStart + "\n")
	fmt.Fprintf(&b, "git diff --cached | gandalf %s\n", guardArgs)
	b.WriteString("GANDALF_EXIT=$?\n")
	b.WriteString("if [ $GANDALF_EXIT -ne 0 ]; then\n")
	b.WriteString("  echo \"gandalf: commit blocked\"\n")
	b.WriteString("  exit $GANDALF_EXIT\n")
	b.WriteString("fi\n")
	b.WriteString(hookMarkerEnd + "\n")
	return b.String()
}

func replaceHookSection(existing, section string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + section
	}

	before := existing[:startIdx]
	after := existing[endIdx+len(hookMarkerEnd):]
	after = strings.TrimPrefix(after, "\n")
	return before + section + after
}

func removeHookSection(existing string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		return existing
	}

	before := existing[:startIdx]
	after := existing[endIdx+len(hookMarkerEnd):]
	after = strings.TrimPrefix(after, "\n")
	return before + after
}
