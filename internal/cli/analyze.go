package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/resumescan/internal/analyzer"
	"github.com/vijay-prabhu/resumescan/internal/config"
	"github.com/vijay-prabhu/resumescan/internal/database"
	"github.com/vijay-prabhu/resumescan/internal/document"
	"github.com/vijay-prabhu/resumescan/internal/match"
	"github.com/vijay-prabhu/resumescan/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume>",
	Short: "Score a resume against a job description",
	Long: `Compare a resume with a job description and report the match score,
missing keywords by category and formatting feedback.

The resume may be a local file or an s3://bucket/key location in PDF, DOCX,
HTML, Markdown or plain text. The job description is passed inline with
--job or read from a file (any supported format, or - for stdin) with --job-file.

Examples:
  resumescan analyze resume.pdf --job-file posting.html
  resumescan analyze resume.docx --job "Go engineer with Kubernetes experience"
  pbpaste | resumescan analyze resume.pdf --job-file - --report report.txt
  resumescan analyze s3://resumes/jane.pdf --job-file job.txt -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeJob     string
	analyzeJobFile string
	analyzeReport  string
	analyzeNoSave  bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Job description text")
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job-file", "f", "", "Read the job description from a file (- for stdin)")
	analyzeCmd.Flags().StringVarP(&analyzeReport, "report", "r", "", "Write a plain text report to this file")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "Do not record this analysis in history")
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-file")
	analyzeCmd.MarkFlagsOneRequired("job", "job-file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := appConfig
	t := NewTerminal()

	loader := newLoader(cfg)

	jobText, err := readJobDescription(ctx, loader, cmd.InOrStdin())
	if err != nil {
		return err
	}

	doc, err := loader.Load(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	t.Status("Loading language model...")
	a, err := newAnalyzer(cfg)
	t.ClearStatus()
	if err != nil {
		return err
	}

	session := analyzer.NewSession(a)
	if err := session.SetResume(doc); err != nil {
		return err
	}
	session.SetJobDescription(jobText)

	result, err := session.Analyze()
	if err != nil {
		return err
	}

	if !analyzeNoSave {
		saveAnalysis(ctx, cfg, doc.Source, session.ResumeText(), jobText, result)
	}

	if analyzeReport != "" {
		text, err := session.Report()
		if err != nil {
			return err
		}
		if err := os.WriteFile(analyzeReport, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", analyzeReport)
	}

	if outputFmt != output.FormatTable && outputFmt != "" {
		return output.Output(outputFmt, result)
	}

	return printAnalysis(cmd.OutOrStdout(), t, result, session.ResumeText())
}

// readJobDescription resolves --job / --job-file into text
func readJobDescription(ctx context.Context, loader *document.Loader, stdin io.Reader) (string, error) {
	if analyzeJobFile == "" {
		return analyzeJob, nil
	}

	if analyzeJobFile == "-" {
		data, err := document.ReadLimited(stdin, document.DefaultMaxBytes, "job description")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	doc, err := loader.Load(ctx, analyzeJobFile)
	if err != nil {
		return "", fmt.Errorf("failed to load job description: %w", err)
	}
	return document.ExtractText(doc)
}

// saveAnalysis records the result; failures are logged, not returned
func saveAnalysis(ctx context.Context, cfg *config.Config, source, resumeText, jobText string, result *match.MatchResult) {
	db, err := openHistory(cfg)
	if err != nil {
		slog.Warn("history unavailable", "error", err)
		return
	}
	if db == nil {
		return
	}
	defer db.Close()

	record := database.NewAnalysis(source, resumeText, jobText, result)
	if err := db.CreateAnalysis(ctx, record); err != nil {
		slog.Warn("failed to save analysis", "error", err)
		return
	}
	slog.Debug("analysis saved", "id", record.ID)
}

func printAnalysis(w io.Writer, t *Terminal, result *match.MatchResult, resumeText string) error {
	fmt.Fprintf(w, "%s %s (%s)\n\n", t.Heading("Match Score:"), t.Score(result.Score), ScoreLabel(result.Score))

	if err := output.ResultDetails(w, result); err != nil {
		return err
	}

	fmt.Fprintln(w)
	// formatting notes were already listed above
	fmt.Fprintln(w, t.Heading("Recommendation:"))
	fmt.Fprintf(w, "  %s\n", analyzer.Recommendations(result)[0])

	if titles := analyzer.SuggestTitles(resumeText); len(titles) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Heading("Suggested Job Titles:"))
		fmt.Fprintf(w, "  %s\n", t.Color(strings.Join(titles, ", "), color.FgWhite))
	}

	return nil
}
