package chat

import (
	"strings"

	prose "github.com/jdkato/prose/v2"

	"github.com/eagle-health/analytics-backend/pkg/logger"
	"go.uber.org/zap"
)

// QuestionStats summarizes how demanding a question is. Drives the
// complexity metadata attached to every response.
type QuestionStats struct {
	WordCount     int
	HasTechnical  bool
	HasMetric     bool
	HasComparison bool
	Complexity    float64
}

var technicalTerms = []string{
	"correlation", "regression", "statistical", "pearson", "coefficient",
	"methodology", "normalized", "aggregated", "distribution", "variance",
}

var metricTerms = []string{
	"average", "total", "sum", "count", "percentage", "rate", "volume", "mean",
}

var comparisonTerms = []string{
	"compare", "comparison", "versus", "vs", "difference", "higher", "lower",
	"more than", "less than", "between",
}

// AnalyzeQuestion tokenizes a question and scores its sophistication.
// Term presence is boolean: repeating "correlation" does not raise the score.
func AnalyzeQuestion(question string) QuestionStats {
	q := strings.ToLower(question)
	wc := wordCount(question)

	stats := QuestionStats{
		WordCount:     wc,
		HasTechnical:  containsAny(q, technicalTerms...),
		HasMetric:     containsAny(q, metricTerms...),
		HasComparison: containsAny(q, comparisonTerms...),
	}
	stats.Complexity = 0.5 * float64(wc)
	if stats.HasTechnical {
		stats.Complexity += 10
	}
	if stats.HasMetric {
		stats.Complexity += 5
	}
	if stats.HasComparison {
		stats.Complexity += 7
	}
	return stats
}

// wordCount uses the prose tokenizer and falls back to whitespace splitting
// when document construction fails.
func wordCount(text string) int {
	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithTagging(false),
		prose.WithSegmentation(false))
	if err != nil {
		logger.Debug("prose tokenization failed, falling back to fields split",
			zap.Error(err))
		return len(strings.Fields(text))
	}
	n := 0
	for _, tok := range doc.Tokens() {
		if hasLetterOrDigit(tok.Text) {
			n++
		}
	}
	if n == 0 {
		return len(strings.Fields(text))
	}
	return n
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return true
		}
	}
	return false
}
