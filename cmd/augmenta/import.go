package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torvik/augmenta/dataset"
)

// importCmd converts annotations written by other tools into the YAML
// sidecars run and inspect consume.
func importCmd() *cobra.Command {
	var (
		imgDir    string
		annots    string
		spec      dataset.IngestSpec
		boxLayout string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import external annotations as YAML sidecars",
		Long: `import reads annotations produced by another labelling tool (JSON, YAML,
CSV or TXT; one file for the whole dataset or one file per image) and
writes one YAML sidecar next to each referenced image.

Field flags name record fields for JSON/YAML and headered CSV/TXT files;
headerless CSV/TXT columns are addressed by index ("0", "1", ...). --box
takes either one field holding a list of four numbers, or four scalar
fields in layout order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger(cmd)
			if err != nil {
				return err
			}
			switch boxLayout {
			case "minmax":
				spec.Layout = dataset.BoxMinMax
			case "minsize":
				spec.Layout = dataset.BoxMinSize
			case "centersize":
				spec.Layout = dataset.BoxCenterSize
			default:
				return fmt.Errorf("unknown box layout %q", boxLayout)
			}

			pkgs, err := dataset.Ingest(imgDir, annots, spec)
			if err != nil {
				return err
			}
			for _, pkg := range pkgs {
				if err := dataset.WriteSidecar(pkg.ImagePath(), pkg.Annotations()); err != nil {
					return err
				}
			}
			logger.Info("import complete", "images", len(pkgs), "source", annots)

			return nil
		},
	}
	cmd.Flags().StringVarP(&imgDir, "images", "i", "", "image directory (required)")
	cmd.Flags().StringVarP(&annots, "annotations", "a", "", "annotation file or directory (required)")
	cmd.Flags().StringVar(&spec.Format, "format", "json", "annotation file type: json, yaml, csv or txt")
	cmd.Flags().StringVar(&spec.Records, "records", "", "JSON/YAML key holding the record list")
	cmd.Flags().StringVar(&spec.ImageRef, "image-ref", "", "field holding the image reference (default: annotation file name)")
	cmd.Flags().StringVar(&spec.LabelID, "label-id", "", "field holding the numeric label id")
	cmd.Flags().StringVar(&spec.LabelName, "label-name", "", "field holding the label name")
	cmd.Flags().StringSliceVar(&spec.Box, "box", nil, "box field(s): one list field or four scalar fields")
	cmd.Flags().StringVar(&boxLayout, "box-layout", "minmax", "box layout: minmax, minsize or centersize")
	_ = cmd.MarkFlagRequired("images")
	_ = cmd.MarkFlagRequired("annotations")

	return cmd
}
