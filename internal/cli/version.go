package cli

import (
	"encoding/json"
	"fmt"

	"github.com/iammeter/openapps/internal/branding"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

// versionInfo is the build metadata stamped in by main.
type versionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func currentVersion() versionInfo {
	return versionInfo{
		Name:    branding.CLIName(),
		Version: buildVersion,
		Commit:  buildCommit,
		Date:    buildDate,
	}
}

func (v versionInfo) String() string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s)", v.Name, v.Version, v.Commit, v.Date)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := currentVersion()
	switch {
	case versionShort:
		fmt.Fprintln(cmd.OutOrStdout(), info.Version)
	case versionJSON:
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling version info: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), info)
	}
	return nil
}
