package main

import (
	"fmt"
	"math/rand"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/torvik/augmenta/pipeline"
)

// inspectCmd prints the built graph of a pipeline description.
func inspectCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the expanded block graph of a pipeline description",
		RunE: func(cmd *cobra.Command, args []string) error {
			raws, err := pipeline.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			blocks, err := pipeline.Build(raws, rand.New(rand.NewSource(0)))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tDETAIL\tSHARE\tPROB\tINFLATION\tNEXT")
			for _, b := range blocks.All() {
				detail := fmt.Sprintf("%s total=%d", b.Dataset(), b.Total())
				if b.Kind() == pipeline.KindAugment {
					detail = b.Name()
					if b.IntProb() < 1 {
						detail = fmt.Sprintf("%s p=%.2f", b.Name(), b.IntProb())
					}
				}
				next := strings.Join(b.Next(), ",")
				if next == "" {
					next = "(output)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%.3f\t%.2f\t%s\n",
					b.ID(), b.Kind(), detail, b.Share(), b.ExtProb(), b.Inflation(), next)
			}

			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "pipeline description file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
