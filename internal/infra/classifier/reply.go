package classifier

import (
	"strings"

	"compliance-prefilter/internal/domain/entity"
	"compliance-prefilter/internal/utils/text"
)

// FallbackReason replaces a missing or empty Reason line.
const FallbackReason = "Model did not provide a clear reason."

// companySentinels are Company values that mean "no company".
var companySentinels = map[string]struct{}{
	"none":       {},
	"n/a":        {},
	"no company": {},
}

// Reply holds the labelled fields found in a model reply. A nil field means
// the label never appeared.
type Reply struct {
	Company  *string
	Decision *string
	Reason   *string
}

// ParseReply extracts the Company, Decision and Reason lines from a model
// reply. Lines end at any text.IsLineBoundary rune. Labels match
// case-insensitively at the start of a line, the value is
// everything after the first colon (trimmed), and a repeated label overwrites
// the earlier one. Lines without a known label are ignored.
func ParseReply(reply string) Reply {
	var r Reply
	for _, line := range text.SplitLines(text.TrimSpace(reply)) {
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "company:"):
			r.Company = labelValue(line)
		case strings.HasPrefix(lower, "decision:"):
			r.Decision = labelValue(line)
		case strings.HasPrefix(lower, "reason:"):
			r.Reason = labelValue(line)
		}
	}
	return r
}

// Normalize applies the defaulting rules and never fails:
//   - Company: absent or a sentinel ("none", "n/a", "no company") becomes ""
//   - Decision: Relevant only if the value starts with "rel", else Irrelevant
//   - Reason: absent or empty becomes FallbackReason
func (r Reply) Normalize() entity.Verdict {
	v := entity.Verdict{
		Company:  deref(r.Company),
		Decision: entity.DecisionIrrelevant,
		Reason:   deref(r.Reason),
	}

	if _, ok := companySentinels[strings.ToLower(v.Company)]; ok {
		v.Company = ""
	}

	if strings.HasPrefix(strings.ToLower(text.TrimSpace(deref(r.Decision))), "rel") {
		v.Decision = entity.DecisionRelevant
	}

	if v.Reason == "" {
		v.Reason = FallbackReason
	}

	return v
}

func labelValue(line string) *string {
	_, value, _ := strings.Cut(line, ":")
	value = text.TrimSpace(value)
	return &value
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
