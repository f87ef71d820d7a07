// Command checkout_start prints the text of a ,v file's earliest
// trunk revision: the reverse of the usual "checkout head" operation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	rcs "github.com/bcohen/editrcs"
)

var maxStringBytes int

var rootCmd = &cobra.Command{
	Use:   "checkout_start <file,v>",
	Short: "Print the earliest trunk revision of an RCS file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckoutStart,
}

func init() {
	rootCmd.Flags().IntVar(&maxStringBytes, "max-string-bytes", 0,
		"reject @-strings longer than this many bytes (0 disables the limit)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCheckoutStart(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	opts := rcs.DefaultOptions()
	opts.MaxStringBytes = maxStringBytes
	f, err := rcs.ParseRcs(data, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}
	text, err := rcs.CheckoutStart(f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
