package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fitforworks/internal/analysis"
	"fitforworks/internal/config"
	"fitforworks/internal/document"
	"fitforworks/internal/flow"
)

var (
	analyzeCategory string
	analyzeRole     string
	analyzeLevel    string
	matchJDFile     string
)

// analyzeCmd reviews a resume without the interactive client
var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file>",
	Short: "Run an ATS review on a resume file",
	Long: `Upload a resume for a one-shot ATS review and print the scored report.

Example:
  fitworks analyze resume.pdf --category "Software Engineering" --role "Backend Engineering" --level Senior`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

// matchCmd matches a resume against a job description file
var matchCmd = &cobra.Command{
	Use:   "match <resume-file>",
	Short: "Match a resume against a job description",
	Long: `Upload a resume together with a job description and print the match
report. The job description must contain at least 100 words.

Example:
  fitworks match resume.pdf --jd job_description.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func newAnalysisClient() (*analysis.Client, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	return analysis.NewClient(cfg), nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}
	client, err := newAnalysisClient()
	if err != nil {
		return err
	}

	logger.Info("analyzing resume",
		zap.String("file", doc.Name),
		zap.Int("words", doc.Words))

	key := analysis.EffectKey(analysis.KindReview, doc.Digest, analyzeCategory, analyzeRole, analyzeLevel)
	raw, err := client.Analyze(cmd.Context(), key, doc, analysis.ReviewParams{
		Category: analyzeCategory,
		Role:     analyzeRole,
		Level:    analyzeLevel,
	})
	if err != nil {
		return err
	}

	printReview(analysis.Adapt(raw, analysis.KindReview))
	return nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}
	if matchJDFile == "" {
		return fmt.Errorf("--jd is required")
	}
	jdBytes, err := os.ReadFile(matchJDFile)
	if err != nil {
		return fmt.Errorf("reading job description: %w", err)
	}
	jd := string(jdBytes)
	if words := flow.WordCount(jd); words < flow.MinJobDescriptionWords {
		return fmt.Errorf("job description has %d words, need at least %d", words, flow.MinJobDescriptionWords)
	}

	client, err := newAnalysisClient()
	if err != nil {
		return err
	}

	logger.Info("matching resume",
		zap.String("file", doc.Name),
		zap.String("jd", matchJDFile))

	key := analysis.EffectKey(analysis.KindMatcher, doc.Digest, matchJDFile)
	raw, err := client.Match(cmd.Context(), key, doc, jd)
	if err != nil {
		return err
	}

	printMatch(analysis.Adapt(raw, analysis.KindMatcher))
	return nil
}

func printReview(r analysis.DisplayResult) {
	fmt.Printf("ATS Score:  %d/100 (%s)\n", r.Score, r.StatusLabel)
	fmt.Printf("Potential:  %d/100\n\n", r.PotentialScore)
	fmt.Println(r.Summary)

	if r.DomainMismatch && r.DomainMismatchAdvice != "" {
		fmt.Println("\n⚠ " + r.DomainMismatchAdvice)
	}

	fmt.Println("\nScore breakdown:")
	fmt.Printf("  Content Quality    %d/10\n", r.Breakdown.ContentQuality)
	fmt.Printf("  ATS Structure      %d/10\n", r.Breakdown.ATSStructure)
	fmt.Printf("  Job Optimization   %d/10\n", r.Breakdown.JobOptimization)
	fmt.Printf("  Writing Quality    %d/10\n", r.Breakdown.WritingQuality)
	fmt.Printf("  Application Ready  %d/10\n", r.Breakdown.ApplicationReady)

	printList("Strengths", r.Strengths)
	printList("Improvements", r.Improvements)
	for _, d := range r.DetailedImprovements {
		fmt.Printf("\n%s: %s\n", d.Section, d.Item)
		if d.SuggestedText != "" {
			fmt.Printf("  suggested: %s\n", d.SuggestedText)
		}
	}
	fmt.Println("\nGitHub: " + r.GithubFeedback)
}

func printMatch(r analysis.DisplayResult) {
	fmt.Printf("Match Score: %d/100 (%s)\n", r.Score, r.StatusLabel)
	fmt.Printf("Potential:   %d/100\n\n", r.PotentialScore)
	fmt.Println(r.Recommendation)

	if len(r.MatchingKeywords) > 0 {
		fmt.Println("\nMatching keywords: " + strings.Join(r.MatchingKeywords, ", "))
	}
	if len(r.MissingKeywords) > 0 {
		fmt.Println("Missing keywords:  " + strings.Join(r.MissingKeywords, ", "))
	}
	printList("Improvements", r.Improvements)
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Println("\n" + title + ":")
	for _, item := range items {
		fmt.Println("  - " + item)
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCategory, "category", "", "Job category (e.g. 'Software Engineering')")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Specific role (e.g. 'Backend Engineering')")
	analyzeCmd.Flags().StringVar(&analyzeLevel, "level", "", "Experience level (Intern, Entry, Mid, Senior, Staff+)")

	matchCmd.Flags().StringVar(&matchJDFile, "jd", "", "Path to the job description text file")
}
