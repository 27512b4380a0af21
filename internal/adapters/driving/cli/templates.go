package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

var (
	templatesOutput   string
	templatesCategory string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the component palette",
	Long: `List every component type that can be placed on a page, with the
default content and styles a new component starts from.`,
	Args: cobra.NoArgs,
	RunE: runTemplates,
}

func init() {
	templatesCmd.Flags().StringVarP(&templatesOutput, "output", "o", formatText, "output format: text, json or yaml")
	templatesCmd.Flags().StringVar(&templatesCategory, "category", "", "only show one category (typography, media, layout, interactive)")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	if err := validFormat(templatesOutput); err != nil {
		return err
	}
	registry, err := requireTemplates()
	if err != nil {
		return err
	}

	list := registry.List()
	if templatesCategory != "" {
		filtered := make([]domain.Template, 0, len(list))
		for _, tmpl := range list {
			if tmpl.Category == templatesCategory {
				filtered = append(filtered, tmpl)
			}
		}
		list = filtered
	}

	if templatesOutput != formatText {
		return writeStructured(cmd.OutOrStdout(), templatesOutput, list)
	}

	if len(list) == 0 {
		cmd.Println("No templates found.")
		return nil
	}

	table := newTableWriter(cmd.OutOrStdout())
	table.header("TYPE", "NAME", "CATEGORY", "CONTAINER")
	for _, tmpl := range list {
		container := ""
		if tmpl.Type.AcceptsChildren() {
			container = "yes"
		}
		table.row(tmpl.Type.String(), tmpl.DisplayName, tmpl.Category, container)
	}
	return table.flush()
}
