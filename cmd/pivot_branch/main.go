// Command pivot_branch makes a branch the new trunk: the branch tip
// becomes head and the former trunk continues below the branch root.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	rcs "github.com/bcohen/editrcs"
	"github.com/bcohen/editrcs/internal/filelock"
)

var output string

var rootCmd = &cobra.Command{
	Use:   "pivot_branch <file,v> <branch-head>",
	Short: "Make a branch tip the new trunk head",
	Args:  cobra.ExactArgs(2),
	RunE:  runPivot,
}

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output path (defaults to overwriting the input)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPivot(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := rcs.ParseRcs(data, rcs.DefaultOptions())
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	pivoted, err := rcs.PivotBranch(f, rcs.Num(args[1]))
	if err != nil {
		return err
	}
	dest := output
	if dest == "" {
		dest = path
	}

	lock, err := filelock.OS.Lock(dest)
	if err != nil {
		return fmt.Errorf("lock %s: %w", dest, err)
	}
	defer lock.Close()

	return os.WriteFile(dest, rcs.Emit(pivoted), 0o644)
}
