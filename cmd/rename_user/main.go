// Command rename_user rewrites the author field of every delta in a
// ,v file from one user id to another and writes the result back out.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	rcs "github.com/bcohen/editrcs"
	"github.com/bcohen/editrcs/internal/filelock"
)

var (
	oldUser string
	newUser string
	output  string
)

var rootCmd = &cobra.Command{
	Use:   "rename_user <file,v>",
	Short: "Rename an author across every delta of an RCS file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRenameUser,
}

func init() {
	rootCmd.Flags().StringVar(&oldUser, "from", "", "author id to replace (required)")
	rootCmd.Flags().StringVar(&newUser, "to", "", "replacement author id (required)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output path (defaults to overwriting the input)")
	rootCmd.MarkFlagRequired("from")
	rootCmd.MarkFlagRequired("to")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRenameUser(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := rcs.ParseRcs(data, rcs.DefaultOptions())
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	rcs.RenameUser(f, oldUser, newUser)

	dest := output
	if dest == "" {
		dest = path
	}

	lock, err := filelock.OS.Lock(dest)
	if err != nil {
		return fmt.Errorf("lock %s: %w", dest, err)
	}
	defer lock.Close()

	return os.WriteFile(dest, rcs.Emit(f), 0o644)
}
