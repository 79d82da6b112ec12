package agent

import (
	"fmt"
	"regexp"
	"strings"
)

var articleNumberPattern = regexp.MustCompile(`\d+`)

// extractArticleNumber pulls the numeric article identifier out of a law id
// such as "Điều 138" or "138/2015". Empty when the id carries no number.
func extractArticleNumber(lawID string) string {
	return articleNumberPattern.FindString(lawID)
}

// FormatSources renders the display-ready source list for a set of retrieved
// documents. Entries are deduplicated by (LawName, LawID) identity and keep
// the score-descending order of the input. The operation is idempotent:
// formatting the same documents twice yields the same list.
func FormatSources(docs []RetrievedDocument) []string {
	type identity struct{ name, id string }
	seen := make(map[identity]bool, len(docs))
	sources := make([]string, 0, len(docs))

	for _, doc := range docs {
		key := identity{doc.LawName, doc.LawID}
		if seen[key] {
			continue
		}
		seen[key] = true
		sources = append(sources, formatSource(doc))
	}
	return sources
}

// formatSource builds the human-readable citation:
// "Điều 56 (Luật Hôn nhân và Gia đình)" when both parts are known, the law
// name alone otherwise.
func formatSource(doc RetrievedDocument) string {
	articleNumber := extractArticleNumber(doc.LawID)
	lawName := strings.TrimSpace(doc.LawName)
	if lawName == unknownLawText {
		lawName = ""
	}

	switch {
	case articleNumber != "" && lawName != "":
		return fmt.Sprintf("Điều %s (%s)", articleNumber, lawName)
	case lawName != "":
		return lawName
	case articleNumber != "":
		return "Điều " + articleNumber
	default:
		return "Không xác định"
	}
}

// dedupLawNames returns the distinct law names of the documents, preserving
// the retrieval order. Used by the clarification branch where the article
// granularity is not yet settled.
func dedupLawNames(docs []RetrievedDocument) []string {
	seen := make(map[string]bool, len(docs))
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		name := strings.TrimSpace(doc.LawName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// sourcesFromLawContext extracts the single document title from a pinned law
// context block ("Tiêu đề: ..." line).
func sourcesFromLawContext(lawContext string) []string {
	for _, line := range strings.Split(lawContext, "\n") {
		if _, title, found := strings.Cut(line, "Tiêu đề:"); found {
			if trimmed := strings.TrimSpace(title); trimmed != "" {
				return []string{trimmed}
			}
		}
	}
	return []string{}
}
