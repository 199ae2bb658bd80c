package trust

import (
	"fmt"
	"strings"
)

func queryDefinerPrompt(subject, language, context, refinement string, topK int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an OSINT research agent. You receive as input the name of a company or individual (e.g., 'OpenAI', 'Jane Doe') and some context. Your task is to generate a list of search queries, in the specified language and optimized for a web search engine, tailored to the type of the input provided. Generate at least %d queries.

Queries should include Boolean operators, quotation marks for exact phrases, and specific keywords to increase precision. If the subject is a person, adapt the categories accordingly. Use the context only if relevant.

Return ONLY the output as a pure JSON list, without any markdown, backticks, or code block. Do not include `+"```json"+` or similar. Output only the JSON list.

Input: %s
Language: %s
Context: %s`, topK, subject, language, context)
	if refinement != "" {
		fmt.Fprintf(&b, "\nRefinement from a previous failed verification, focus the queries on it: %s", refinement)
	}
	return b.String()
}

func verifierPrompt(chunks []string, language string) string {
	return fmt.Sprintf(`Analyze the following excerpts of information from different sources: %s. Assess whether the information is consistent, reliable, and free of contradictions. If everything is consistent, reply only 'OK'. If you find discrepancies, reply with a JSON containing:
- whys: a list of contradictions or reasons for doubt (at least one).
- suggested_retry: a search engine query to clarify the critical points and to find additional information for a more complete verification. Do not include the subject, subject type, or the context previously provided by the user in suggested_retry.
Example: {"whys": ["Reason 1", "Reason 2"], "suggested_retry": "keywords for new search"}. Reply in language %s.`,
		formatChunks(chunks), language)
}

func scorerPrompt(searchesJSON, language string) string {
	return fmt.Sprintf(`Use the results (searches) in JSON format to assign a trust score (0-100), explaining the reasons clearly, precisely, and positively. Example of JSON input: {"searches": ["search text 1", "search text 2"]}. Example of valid JSON output: {"score": 85, "details": "Reason here"}. Searches: %s. Reply in the language %s.`,
		searchesJSON, language)
}

func formatChunks(chunks []string) string {
	quoted := make([]string, len(chunks))
	for i, c := range chunks {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
