package cli

import (
	"fmt"
	"path"
	"strings"

	"github.com/iammeter/openapps/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	newRuntime     string
	newName        string
	newDescription string
	newAuthor      string
	newSource      string
)

var newCmd = &cobra.Command{
	Use:   "new <id>",
	Short: "Create a new app directory",
	Long: `Create apps/<id>/ with a manifest and entry page for the given runtime.
Hosted apps are created with the fixed /health, /ws, /api gateway.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newRuntime, "runtime", "static", "App runtime (static, hosted)")
	newCmd.Flags().StringVar(&newName, "name", "", "Display name (default derived from id)")
	newCmd.Flags().StringVar(&newDescription, "description", "", "Short description")
	newCmd.Flags().StringVar(&newAuthor, "author", "", "Author")
	newCmd.Flags().StringVar(&newSource, "source", "", "Source repository URL (default the site repository)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	settings, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	data := scaffold.NewData(args[0], newRuntime)
	if newName != "" {
		data.Name = newName
	}
	if newDescription != "" {
		data.Description = newDescription
	}
	if newAuthor != "" {
		data.Author = newAuthor
	}
	if newSource != "" {
		data.Source = newSource
	}

	result, err := scaffold.Generate(siteFs, settings.Root, settings.AppsDir, settings.Resolve(settings.Schema), data)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s/ (%s)\n",
		path.Join(settings.AppsDir, data.ID), strings.Join(result.Files, ", "))
	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
	return nil
}
