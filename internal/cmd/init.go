package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pthm/dilint/internal/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter .dilint.yaml",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing options file")
	RootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	path, err := writeTemplate(dir, initForce)
	if err != nil {
		return err
	}

	u := GetUI()
	fmt.Fprintln(u.Writer, u.Styles.Success.Render(u.Styles.IconSuccess+" Wrote "+path))
	return nil
}

// writeTemplate writes the starter options file into dir and returns its path.
func writeTemplate(dir string, force bool) (string, error) {
	path := filepath.Join(dir, config.FileName)

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err != nil {
		return "", fmt.Errorf("creating options file: %w", err)
	}

	if _, err := f.Write(config.Template()); err != nil {
		f.Close()
		return "", fmt.Errorf("writing options file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing options file: %w", err)
	}
	return path, nil
}
