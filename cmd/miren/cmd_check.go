package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse files and print a one-line summary per file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				out, _, err := parseFile(path)
				if err != nil {
					return err
				}
				if n := len(out.Errors); n > 0 {
					fmt.Printf("%s: %d error(s)\n", path, n)
					failed++
				} else {
					fmt.Printf("%s: ok\n", path)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d file(s) failed", failed)
			}
			return nil
		},
	}
}
