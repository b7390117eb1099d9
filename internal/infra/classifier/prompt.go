package classifier

import "strings"

// promptInstructions is the fixed compliance-relevance instruction block.
// The article text is appended after the trailing "Text:" line.
const promptInstructions = `
You are a corporate compliance relevance filter.

Your task for the GIVEN TEXT:
1. Identify the MAIN company or organisation the text is primarily about (if any).
2. Decide whether the text is RELEVANT or IRRELEVANT for corporate risk & compliance.
3. Write ONE short sentence explaining your decision.

Classification rules:
- **RELEVANT:** The text mainly discusses a specific company AND includes serious negative or risk-related topics such as legal issues, fraud, corruption, regulatory investigations, ESG controversies, safety incidents, data breaches, major product failures, financial misconduct, or significant reputational crises.
- **IRRELEVANT:** The text focuses on marketing, product reviews, advertising, general information, or any content without concrete compliance or risk events.
- If the text describes **resolved or historical compliance cases** framed positively (e.g., lessons learned, reforms, cooperation, ethical improvements), classify it as **Irrelevant**, unless it reports new investigations, penalties, or ongoing legal issues.
- If **the text is very short or lacks meaningful information** (e.g., fewer than two sentences, or mostly headlines/keywords), classify as **Irrelevant**.
- If **no clear company is mentioned**, classify as **Irrelevant**.
- If **a company is mentioned only briefly or as an example**, and is **not the main subject**, classify as **Irrelevant**.

Output format (MUST follow exactly):
Company: <company name or None>
Decision: <Relevant or Irrelevant>
Reason: <one short sentence>

Text:
`

// BuildPrompt renders the classification prompt for an already truncated text.
// The result depends only on text.
func BuildPrompt(text string) string {
	var b strings.Builder
	b.Grow(len(promptInstructions) + len(text) + 1)
	b.WriteString(promptInstructions)
	b.WriteString(text)
	b.WriteByte('\n')
	return b.String()
}
