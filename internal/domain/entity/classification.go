package entity

// Decision is the binary outcome of the relevance classifier.
type Decision string

const (
	// DecisionRelevant marks an article about a named company with a concrete compliance or risk topic.
	DecisionRelevant Decision = "Relevant"
	// DecisionIrrelevant is the default for everything else, including unparseable replies.
	DecisionIrrelevant Decision = "Irrelevant"
)

// IsRelevant reports whether d is DecisionRelevant.
func (d Decision) IsRelevant() bool {
	return d == DecisionRelevant
}

// Verdict is the normalized classifier output for a single text.
// Company may be empty; Reason never is.
type Verdict struct {
	Company  string
	Decision Decision
	Reason   string
}

// Classification is one row of the output table.
type Classification struct {
	ID       ArticleID
	Company  string
	Decision Decision
	Reason   string
}

// NewClassification binds a verdict to the id of the record it was produced for.
func NewClassification(id ArticleID, v Verdict) Classification {
	return Classification{
		ID:       id,
		Company:  v.Company,
		Decision: v.Decision,
		Reason:   v.Reason,
	}
}
