package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/materiality-evals/pkg/adapters"
	"github.com/de-tools/materiality-evals/pkg/services/agent"
	"github.com/de-tools/materiality-evals/pkg/services/config"
	"github.com/de-tools/materiality-evals/pkg/services/dataset"
	"github.com/de-tools/materiality-evals/pkg/services/extraction"
	"github.com/de-tools/materiality-evals/pkg/services/render"
)

const (
	parsedImagesDirName  = "parsed_images"
	extractedDataDirName = "extracted_data"
	reportJSONName       = "material_changes_report.json"
	reportCSVName        = "material_changes_report.csv"
)

type ExtractCmd struct {
	profilePath string
	inputPath   string
	outputDir   string
}

func NewExtractCmd() *cobra.Command {
	ec := &ExtractCmd{}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract material changes from a financial report PDF",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.profilePath, "profile", "", "Path to the extraction profile")
	cmd.Flags().StringVar(&ec.inputPath, "input", "", "Path to the source PDF")
	cmd.Flags().StringVar(&ec.outputDir, "output", "data/mock_eval_dataset", "Dataset output directory")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (ec *ExtractCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	profile, err := config.LoadProfile(ec.profilePath)
	if err != nil {
		return fmt.Errorf("failed to load profile %s: %w", ec.profilePath, err)
	}

	parsedImagesDir := filepath.Join(ec.outputDir, parsedImagesDirName)
	extractedDataDir := filepath.Join(ec.outputDir, extractedDataDirName)
	for _, dir := range []string{parsedImagesDir, extractedDataDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	logger.Info().Str("input", ec.inputPath).Msg("gathering LLM input")
	dataURLs, err := render.PageDataURLs(ctx, ec.inputPath, parsedImagesDir, profile.RenderDPI)
	if err != nil {
		return err
	}
	inputByPage := make(map[string]extraction.PageInput, len(dataURLs))
	for pageNumber, dataURL := range dataURLs {
		inputByPage[pageNumber] = extraction.PageInput{ImageDataURL: dataURL}
	}

	extractionAgent, err := newAgent(cmd, profile)
	if err != nil {
		return err
	}
	extractor := extraction.NewExtractor(extractionAgent, extraction.Settings{
		PagesPerCall: profile.PagesPerCall,
		MaxInFlight:  profile.MaxInFlight,
	})

	stem := render.Stem(ec.inputPath)
	report, err := extractor.ExtractReport(ctx, stem, inputByPage)
	if err != nil {
		return err
	}

	logger.Info().Msg("saving output to JSON")
	if err := dataset.WriteReportJSON(report, filepath.Join(extractedDataDir, reportJSONName)); err != nil {
		return err
	}

	logger.Info().Msg("saving output to CSV")
	records := adapters.MapReportDomainToStore(report, stem)
	if err := dataset.WriteReportCSV(records, filepath.Join(extractedDataDir, reportCSVName)); err != nil {
		return err
	}

	return dataset.CopySource(ec.inputPath, ec.outputDir)
}

func newAgent(cmd *cobra.Command, profile *config.Profile) (extraction.Agent, error) {
	if profile.Stub {
		return agent.NewStubAgent(), nil
	}
	return agent.NewOpenAIAgent(cmd.Context(), agent.ClientConfig{
		APIKey:               profile.APIKey(),
		BaseURL:              profile.BaseURL,
		Model:                profile.Model,
		Azure:                profile.Azure.Enabled,
		Endpoint:             profile.Azure.Endpoint,
		UseDefaultCredential: profile.Azure.UseDefaultCredential,
	})
}
