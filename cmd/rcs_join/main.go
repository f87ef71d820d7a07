// Command rcs_join splices two ,v histories together: b's trunk is
// renumbered and appended above a's head, whose text must match b's
// earliest revision.
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
	Use:   "rcs_join <a,v> <b,v>",
	Short: "Join two RCS histories that share a common revision",
	Args:  cobra.ExactArgs(2),
	RunE:  runJoin,
}

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output path (required)")
	rootCmd.MarkFlagRequired("output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runJoin(cmd *cobra.Command, args []string) error {
	aData, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	bData, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	a, err := rcs.ParseRcs(aData, rcs.DefaultOptions())
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}
	b, err := rcs.ParseRcs(bData, rcs.DefaultOptions())
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[1], err)
	}
	joined, err := rcs.JoinRcs(a, b)
	if err != nil {
		return err
	}

	lock, err := filelock.OS.Lock(output)
	if err != nil {
		return fmt.Errorf("lock %s: %w", output, err)
	}
	defer lock.Close()

	return os.WriteFile(output, rcs.Emit(joined), 0o644)
}
