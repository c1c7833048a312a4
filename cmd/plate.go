package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/techagentng/civiceye/services/ocr"
	"github.com/techagentng/civiceye/services/plate"
)

var plateImage string

var plateCmd = &cobra.Command{
	Use:   "plate [text...]",
	Short: "Extract a vehicle number from OCR text or an image",
	Long: `Runs the plate normalizer over the given text. With --image the file is sent to the
OCR service first and its text is normalized.`,
	RunE: runPlate,
}

func init() {
	plateCmd.Flags().StringVar(&plateImage, "image", "", "image file to recognize")
}

func runPlate(cmd *cobra.Command, args []string) error {
	raw := strings.Join(args, " ")
	if plateImage != "" {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(plateImage)
		if err != nil {
			return err
		}
		recognizer := ocr.NewSpaceClient(ocr.Options{
			Endpoint:   conf.OCREndpoint,
			APIKey:     conf.OCRApiKey,
			Language:   conf.OCRLanguage,
			Timeout:    conf.OCRTimeout,
			Preprocess: true,
		})
		raw, err = recognizer.RecognizeText(cmd.Context(), data, filepath.Base(plateImage))
		if err != nil {
			return err
		}
	}
	return printPlate(cmd.OutOrStdout(), raw)
}

func printPlate(w io.Writer, raw string) error {
	result, err := plate.Extract(raw)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, result.Plate)
	if result.LowConfidence {
		fmt.Fprintln(w, result.Hint)
	}
	return nil
}
