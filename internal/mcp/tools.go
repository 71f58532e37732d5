package mcp

// AnalyzeInput is the input of the analyze_resume tool
type AnalyzeInput struct {
	ResumePath     string `json:"resume_path,omitempty" jsonschema:"Local path or s3://bucket/key of the resume (PDF, DOCX, HTML or text)"`
	ResumeText     string `json:"resume_text,omitempty" jsonschema:"Resume as plain text, used when resume_path is empty"`
	JobDescription string `json:"job_description" jsonschema:"Full text of the job description"`
}

// AnalyzeOutput is the result of the analyze_resume tool
type AnalyzeOutput struct {
	Score             float64             `json:"score" jsonschema:"Match score between 0 and 100"`
	MissingByCategory map[string][]string `json:"missing_by_category" jsonschema:"Job keywords missing from the resume keyed by technical, analytical, soft"`
	MatchedKeywords   []string            `json:"matched_keywords" jsonschema:"Job keywords the resume already covers"`
	FormattingNotes   []string            `json:"formatting_notes" jsonschema:"Structural feedback on the resume"`
	Recommendations   []string            `json:"recommendations"`
	Report            string              `json:"report" jsonschema:"Plain text report"`
	AnalysisID        string              `json:"analysis_id,omitempty" jsonschema:"History record ID when the analysis was saved"`
}

// ExtractInput is the input of the extract_resume_text tool
type ExtractInput struct {
	Path string `json:"path" jsonschema:"Local path or s3://bucket/key of the resume"`
}

// ExtractOutput is the result of the extract_resume_text tool
type ExtractOutput struct {
	Source string `json:"source"`
	Pages  int    `json:"pages"`
	Words  int    `json:"words"`
	Text   string `json:"text" jsonschema:"Text as an applicant tracking system reads it"`
}

// TitlesInput is the input of the suggest_job_titles tool
type TitlesInput struct {
	ResumePath string `json:"resume_path,omitempty" jsonschema:"Local path or s3://bucket/key of the resume"`
	ResumeText string `json:"resume_text,omitempty" jsonschema:"Resume as plain text, used when resume_path is empty"`
}

// TitlesOutput is the result of the suggest_job_titles tool
type TitlesOutput struct {
	Titles []string `json:"titles"`
}

// ListInput is the input of the list_analyses tool
type ListInput struct {
	Limit     int     `json:"limit,omitempty" jsonschema:"Maximum number of results to return (default: 20)"`
	SinceDays int     `json:"since_days,omitempty" jsonschema:"Only show analyses from the last N days"`
	MinScore  float64 `json:"min_score,omitempty" jsonschema:"Only show analyses scoring at least this much"`
}

// AnalysisSummary is one history entry returned by list_analyses
type AnalysisSummary struct {
	ID           string  `json:"id"`
	ResumeSource string  `json:"resume_source"`
	JobExcerpt   string  `json:"job_excerpt"`
	Score        float64 `json:"score"`
	MissingCount int     `json:"missing_count"`
	CreatedAt    string  `json:"created_at"`
}

// ListOutput is the result of the list_analyses tool
type ListOutput struct {
	Analyses []AnalysisSummary `json:"analyses"`
}

const (
	toolAnalyze = "analyze_resume"
	toolExtract = "extract_resume_text"
	toolTitles  = "suggest_job_titles"
	toolList    = "list_analyses"

	summaryURI = "resumescan://history/summary"

	defaultListLimit = 20
)
