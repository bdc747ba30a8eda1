package cli

import (
	"fmt"

	"github.com/iammeter/openapps/internal/index"
	"github.com/iammeter/openapps/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	generatePagesBaseURL string
	generateOutput       string
	generateDryRun       bool
	generateJobs         int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Validate manifests and write the app index",
	Long: `Validate every manifest, derive one record per app and write the sorted
index (apps/index.json by default). Nothing is written if any manifest fails.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generatePagesBaseURL, "pages-base-url", "", "Base URL static apps are served from")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "Index path relative to the site root")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Print the index instead of writing it")
	generateCmd.Flags().IntVar(&generateJobs, "jobs", 1, "Number of manifests to check concurrently")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	settings, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if generatePagesBaseURL != "" {
		settings.PagesBaseURL = generatePagesBaseURL
	}
	if generateOutput != "" {
		settings.IndexPath = generateOutput
	}

	vopts := validateOptions(settings, log)
	vopts.Jobs = generateJobs
	result, err := pipeline.Generate(cmd.Context(), pipeline.GenerateOptions{
		ValidateOptions: vopts,
		PagesBaseURL:    settings.PagesBaseURL,
		IndexPath:       settings.IndexPath,
		DryRun:          generateDryRun,
	})
	if err != nil {
		return err
	}

	if generateDryRun {
		data, err := index.Marshal(result.Index)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %s (%d apps)\n", settings.IndexPath, result.Index.Total)
	return nil
}
