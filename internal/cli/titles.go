package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/resumescan/internal/analyzer"
	"github.com/vijay-prabhu/resumescan/internal/document"
	"github.com/vijay-prabhu/resumescan/internal/output"
)

var titlesCmd = &cobra.Command{
	Use:   "titles <resume>",
	Short: "Suggest job titles for a resume",
	Long: `Suggest job titles based on keywords found in a resume.

Examples:
  resumescan titles resume.pdf
  resumescan titles resume.pdf -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runTitles,
}

func init() {
	rootCmd.AddCommand(titlesCmd)
}

func runTitles(cmd *cobra.Command, args []string) error {
	doc, err := newLoader(appConfig).Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	text, err := document.ExtractText(doc)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, analyzer.SuggestTitles(text))
}
