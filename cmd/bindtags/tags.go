package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/specialistvlad/bindtags/internal/metrics"
	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/symbol"
	"github.com/specialistvlad/bindtags/internal/tag"
)

func newTagsCmd() *cobra.Command {
	var natures []string
	var language, kind, persist string
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "tags NAME",
		Short: "Compute all tags of a binding",
		Long: "Computes all tags of a binding named NAME defined in a source unit of the given\n" +
			"language and project natures. With --persist the tags are synced into the\n" +
			"durable store under KEY.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			b := symbol.NewBinding(args[0], model.Kind(kind))
			if language != "" {
				tu := symbol.NewTranslationUnit(symbol.NewProject(natures...), language)
				b.Define(symbol.NewName(args[0], tu))
			}
			printTags(cmd.OutOrStdout(), a.Compute(b))
			if showMetrics {
				defer func() { _ = metrics.WriteCounters(cmd.ErrOrStderr(), prometheus.DefaultGatherer) }()
			}

			if persist == "" {
				return nil
			}
			store, closeDB, err := a.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			if !a.Persist(cmd.Context(), store, persist, b) {
				return fmt.Errorf("failed to persist tags under %q", persist)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "persisted under %s\n", persist)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(model.KindVariable), "Binding kind: variable, function, type, macro or field.")
	cmd.Flags().StringSliceVar(&natures, "nature", nil, "Project nature (repeatable).")
	cmd.Flags().StringVar(&language, "language", "", "Language id; without it taggers run without context.")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print tagging counters to stderr when done.")
	cmd.Flags().StringVar(&persist, "persist", "", "Sync the tags into the durable store under this key.")
	return cmd
}

func newStoredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stored [KEY]",
		Short: "Print persisted tags, or list stored keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			store, closeDB, err := a.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			if len(args) == 0 {
				keys, err := store.Keys(cmd.Context())
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			}
			printTags(cmd.OutOrStdout(), store.ForBinding(cmd.Context(), args[0]).Tags())
			return nil
		},
	}
}

func printTags(w io.Writer, tags []tag.View) {
	for _, v := range tags {
		fmt.Fprintf(w, "%s\t%d\t%s\n", v.TaggerID(), v.Len(), hex.EncodeToString(tag.Contents(v)))
	}
}
