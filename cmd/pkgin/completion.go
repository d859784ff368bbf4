package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const completionScopeEnv = "PKGIN_COMPLETION_SCOPE"

func createInstallCompletionCommand() *cobra.Command {
	var shellName string
	var force bool

	cmd := &cobra.Command{
		Use:   "install-completion",
		Short: "Install shell completion for pkgin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeInstallCompletion(cmd.Root(), shellName, force)
		},
	}
	cmd.Flags().StringVar(&shellName, "shell", "", "shell to target (bash, zsh, fish, powershell); default: detect from $SHELL")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing completion file")
	return cmd
}

func executeInstallCompletion(root *cobra.Command, shellName string, force bool) error {
	if shellName == "" {
		shellName = detectShell()
	}

	dest, err := completionPath(shellName)
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("completion file %s already exists, pass --force to overwrite", dest)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating completion directory: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating completion file: %w", err)
	}
	defer f.Close()

	switch shellName {
	case "zsh":
		err = root.GenZshCompletion(f)
	case "fish":
		err = root.GenFishCompletion(f, true)
	case "powershell":
		err = root.GenPowerShellCompletionWithDesc(f)
	default:
		err = root.GenBashCompletion(f)
	}
	if err != nil {
		return fmt.Errorf("generating %s completion: %w", shellName, err)
	}

	fmt.Printf("installed %s completion to %s\n", shellName, dest)
	return nil
}

func detectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	if os.Getenv("PSModulePath") != "" {
		return "powershell"
	}
	return "bash"
}

func completionPath(shellName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	scope := strings.ToLower(os.Getenv(completionScopeEnv))
	systemWide := scope == "system"

	switch shellName {
	case "zsh":
		if systemWide && dirWritable("/usr/share/zsh/site-functions") {
			return "/usr/share/zsh/site-functions/_pkgin", nil
		}
		return filepath.Join(home, ".zsh", "completions", "_pkgin"), nil
	case "fish":
		if systemWide && dirWritable("/etc/fish/completions") {
			return "/etc/fish/completions/pkgin.fish", nil
		}
		return filepath.Join(home, ".config", "fish", "completions", "pkgin.fish"), nil
	case "powershell":
		return filepath.Join(home, ".config", "powershell", "pkgin_completion.ps1"), nil
	default:
		if systemWide && dirWritable("/etc/bash_completion.d") {
			return "/etc/bash_completion.d/pkgin", nil
		}
		return filepath.Join(home, ".bash_completion.d", "pkgin"), nil
	}
}

func dirWritable(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	probe := filepath.Join(dir, ".pkgin-write-test")
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}
