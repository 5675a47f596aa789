// Package initcmder provides the init command for initializing a local .hearth
// directory in the current working directory.
package initcmder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	dirName = ".hearth"
)

const initLongDesc string = `Initialize a new .hearth/ directory in the current working directory.

Creates a local .hearth/ directory that takes precedence over the default
~/.hearth/ directory for memory storage, configuration, and other hearth
operations.

This is useful for maintaining separate hearth state per project or directory.

Examples:
  hearth init`

const initShortDesc string = "Initialize a local .hearth/ directory"

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit()
		},
	}

	return cmd
}

func runInit() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		fmt.Printf("Already initialized: %s\n", dir)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating .hearth directory: %w", err)
	}

	fmt.Printf("Initialized .hearth directory: %s\n", dir)
	return nil
}
