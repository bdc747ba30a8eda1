package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/iammeter/openapps/internal/config"
	"github.com/iammeter/openapps/internal/index"
	"github.com/iammeter/openapps/internal/pipeline"
	"github.com/iammeter/openapps/internal/record"
	"github.com/spf13/cobra"
)

var (
	listRuntimeFilter string
	listJSON          bool
	listFromIndex     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List valid apps",
	Long: `List the apps of the site as they would appear in the index, sorted by id.
With --index, list the apps of the index that was last written instead.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listRuntimeFilter, "runtime", "", "Filter by runtime (static, hosted)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output records in JSON format")
	listCmd.Flags().BoolVar(&listFromIndex, "index", false, "Read the written index instead of the manifests")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	settings, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	idx, err := loadIndex(cmd, settings, log)
	if err != nil {
		return err
	}

	var records []*record.Record
	for _, r := range idx.Apps {
		if listRuntimeFilter != "" && r.Runtime != listRuntimeFilter {
			continue
		}
		records = append(records, r)
	}

	if listJSON {
		return printListJSON(cmd, records)
	}
	if len(records) == 0 {
		if listRuntimeFilter != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No apps matching --runtime=%s\n", listRuntimeFilter)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No apps found.")
		}
		return nil
	}
	return printListTable(cmd, records)
}

// loadIndex reads the written index with --index and otherwise assembles
// one in memory from the manifests.
func loadIndex(cmd *cobra.Command, settings *config.Settings, log *slog.Logger) (*index.Index, error) {
	if listFromIndex {
		return index.Read(siteFs, settings.Resolve(settings.IndexPath))
	}
	result, err := pipeline.Generate(cmd.Context(), pipeline.GenerateOptions{
		ValidateOptions: validateOptions(settings, log),
		PagesBaseURL:    settings.PagesBaseURL,
		IndexPath:       settings.IndexPath,
		DryRun:          true,
	})
	if err != nil {
		return nil, err
	}
	return result.Index, nil
}

func printListTable(cmd *cobra.Command, records []*record.Record) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tRUNTIME\tVERSION\tENTRY")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Runtime, r.Version, r.Entry)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, records []*record.Record) error {
	if records == nil {
		records = []*record.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
