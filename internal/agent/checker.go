package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// checkerVerdict is the strict structured output requested from the checker.
type checkerVerdict struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// check classifies the retrieval outcome into SUFFICIENT, MISSING_INFO or
// NO_LAW. With no documents there is nothing to judge and the verdict is
// NO_LAW without an LLM call. On checker failure the pipeline fails toward
// NO_LAW: refusing beats a wrong-but-confident answer.
func (p *Pipeline) check(ctx context.Context, st *State) {
	st.Trace = append(st.Trace, "checker")
	logger := p.getLogger(ctx)

	if len(st.RetrievedDocs) == 0 {
		st.CheckStatus = StatusNoLaw
		return
	}

	contextText := buildCheckerContext(st.RetrievedDocs)
	prompt := renderCheckerPrompt(st.StandaloneQuery, st.ChatHistory, contextText)

	reply, err := p.completer.CompleteJSON(ctx, prompt)
	if err != nil {
		logger.WarnContext(ctx, "sufficiency check failed, refusing", "error", err)
		st.ErrorMessage = "checker: " + err.Error()
		st.CheckStatus = StatusNoLaw
		return
	}

	var verdict checkerVerdict
	if err := json.Unmarshal([]byte(extractJSONObject(reply)), &verdict); err != nil {
		logger.WarnContext(ctx, "sufficiency check returned malformed JSON, refusing", "error", err)
		st.ErrorMessage = "checker: " + err.Error()
		st.CheckStatus = StatusNoLaw
		return
	}

	status, ok := ParseCheckStatus(strings.TrimSpace(verdict.Status))
	if !ok {
		logger.WarnContext(ctx, "sufficiency check returned unknown status, refusing", "status", verdict.Status)
		st.CheckStatus = StatusNoLaw
		return
	}

	st.CheckStatus = status
	logger.InfoContext(ctx, "sufficiency check completed", "status", status, "reason", verdict.Reason)
}

func buildCheckerContext(docs []RetrievedDocument) string {
	blocks := make([]string, 0, len(docs))
	for _, doc := range docs {
		blocks = append(blocks, fmt.Sprintf("Văn bản: %s %s\nNội dung: %s", doc.LawID, doc.LawName, doc.Content))
	}
	return strings.Join(blocks, "\n\n")
}
