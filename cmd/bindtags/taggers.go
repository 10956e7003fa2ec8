package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTaggersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taggers",
		Short: "List registered taggers in registry order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, info := range a.Taggers() {
				fmt.Fprintf(out, "%s\t%s\n", info.ID, info.Decision)
			}
			fmt.Fprintf(out, "factories: %s\n", strings.Join(a.Catalog().Names(), ", "))
			return nil
		},
	}
}
