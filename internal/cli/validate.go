package cli

import (
	"fmt"

	"github.com/iammeter/openapps/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	validateAll  bool
	validateJobs int
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every app manifest",
	Long: `Validate every apps/*/manifest.json against the manifest schema and the
directory contracts (id matches its directory, entry file exists, hosted apps
declare the fixed gateway). Stops at the first violation unless --all is set.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "Report every violation instead of stopping at the first")
	validateCmd.Flags().IntVar(&validateJobs, "jobs", 1, "Number of manifests to check concurrently")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	settings, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	opts := validateOptions(settings, log)
	opts.CollectAll = validateAll
	opts.Jobs = validateJobs

	report, err := pipeline.Validate(cmd.Context(), opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Manifests validated: %d\n", report.Count)
	return nil
}
