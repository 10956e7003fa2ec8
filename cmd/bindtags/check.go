package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/bindtags/internal/symbol"
)

func newCheckCmd() *cobra.Command {
	var natures []string
	var language string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show which taggers are enabled for a project and language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			tu := symbol.NewTranslationUnit(symbol.NewProject(natures...), language)
			out := cmd.OutOrStdout()
			for _, e := range a.Check(symbol.NewName("_", tu)) {
				state := "disabled"
				if e.Enabled {
					state = "enabled"
				}
				fmt.Fprintf(out, "%s\t%s\n", e.ID, state)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&natures, "nature", nil, "Project nature (repeatable).")
	cmd.Flags().StringVar(&language, "language", "", "Language id of the source unit.")
	_ = cmd.MarkFlagRequired("language")
	return cmd
}
