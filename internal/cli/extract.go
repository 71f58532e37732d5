package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/resumescan/internal/document"
	"github.com/vijay-prabhu/resumescan/internal/output"
)

var extractCmd = &cobra.Command{
	Use:   "extract <resume>",
	Short: "Show the text an ATS would see",
	Long: `Extract the plain text of a resume exactly as the analyzer reads it.

Useful for spotting content lost to multi-column layouts, images or
unusual fonts before sending a resume through an applicant tracking system.

Examples:
  resumescan extract resume.pdf
  resumescan extract resume.docx -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

type extractResult struct {
	Source string `json:"source"`
	Pages  int    `json:"pages"`
	Words  int    `json:"words"`
	Text   string `json:"text"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	doc, err := newLoader(appConfig).Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	text, err := document.ExtractText(doc)
	if err != nil {
		return err
	}

	if outputFmt == output.FormatJSON {
		return output.JSON(extractResult{
			Source: doc.Source,
			Pages:  doc.PageCount(),
			Words:  len(strings.Fields(text)),
			Text:   text,
		})
	}

	if text == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "No extractable text found. The document may be scanned or image-only.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
