package agent

import (
	"context"
	"encoding/json"
	"strings"
)

// routerDecision is the strict structured output requested from the classifier.
type routerDecision struct {
	Intent string `json:"intent"`
	Limit  int    `json:"limit"`
}

// route classifies the standalone query into an intent and retrieval breadth.
// A failed or malformed classification never aborts the pipeline: the safe
// default is SEARCH_CIVIL with limit 3, which still attempts retrieval
// rather than silently refusing.
func (p *Pipeline) route(ctx context.Context, st *State) {
	st.Trace = append(st.Trace, "router")
	logger := p.getLogger(ctx)

	reply, err := p.completer.CompleteJSON(ctx, renderRouterPrompt(st.StandaloneQuery))
	if err != nil {
		logger.WarnContext(ctx, "router classification failed, falling back to civil", "error", err)
		st.Intent = IntentCivil
		st.SearchLimit = 3
		return
	}

	var decision routerDecision
	if err := json.Unmarshal([]byte(extractJSONObject(reply)), &decision); err != nil {
		logger.WarnContext(ctx, "router returned malformed JSON, falling back to civil", "error", err)
		st.Intent = IntentCivil
		st.SearchLimit = 3
		return
	}

	intent, ok := ParseIntent(strings.TrimSpace(decision.Intent))
	if !ok {
		logger.WarnContext(ctx, "router returned unknown intent, falling back to civil", "intent", decision.Intent)
		st.Intent = IntentCivil
		st.SearchLimit = 3
		return
	}

	st.Intent = intent
	st.SearchLimit = decision.Limit
	if intent == IntentNoSearch {
		st.SearchLimit = 0
	} else if st.SearchLimit <= 0 {
		st.SearchLimit = defaultSearchLimits[intent]
	}

	logger.InfoContext(ctx, "query routed", "intent", st.Intent, "search_limit", st.SearchLimit)
}

// extractJSONObject tolerates code fences and prose around the JSON object
// models tend to emit even when asked not to.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
