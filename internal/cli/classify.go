package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nuggetube-backend/internal/classifier"
	"nuggetube-backend/internal/config"
	"nuggetube-backend/internal/service"
)

func init() {
	cmd := &cobra.Command{
		Use:   "classify <image-file>",
		Short: "Classify a PNG or JPEG drawing",
		Args:  cobra.ExactArgs(1),
		RunE:  runClassify,
	}

	RootCmd.AddCommand(cmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	raster, err := classifier.Decode(f, cfg.Drawing.MaxWidth, cfg.Drawing.MaxHeight)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	// No analysis pause offline.
	drawing := service.NewDrawingService(classifier.New(nil), nil, service.NopSpeaker{}, config.DrawingConfig{})
	resp, err := drawing.Analyze(cmd.Context(), raster)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatFlag == "json" {
		return printJSON(w, resp)
	}

	kind := "live chicken"
	if resp.IsFood {
		kind = "food"
	}
	fmt.Fprintf(w, "%s (%s)\n", resp.Descriptor, kind)
	fmt.Fprintln(w, resp.Recommendation.Message)
	return nil
}
