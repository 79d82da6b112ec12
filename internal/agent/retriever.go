package agent

import (
	"context"
	"sort"
	"strings"

	"lawadvisor-ai/internal/vectorstore"
)

// Payload field names are an index-schema contract shared with the offline
// import job; they must stay stable.
const (
	payloadLawID       = "so_hieu"
	payloadLawName     = "loai_van_ban"
	payloadContent     = "page_content"
	payloadContentAlt  = "combine_Article_Content"
	unknownArticleText = "Không rõ điều"
	unknownLawText     = "Không rõ văn bản"
)

// domainKeywords is the intent-scoped allow-list applied to the law display
// name after the hard threshold. Intents with an empty list accept all
// domains. The filter prevents a penal-code intent from surfacing unrelated
// civil-law hits that happen to be semantically close.
var domainKeywords = map[Intent][]string{
	IntentPenal:     {"Hình sự", "Tội phạm", "Bộ luật Hình sự", "Bộ Luật Hình Sự"},
	IntentCivil:     {"Dân sự", "Bộ luật Dân sự", "Hợp đồng", "Bất động sản", "Bộ Luật Dân Sự"},
	IntentProcedure: {"Doanh nghiệp", "Hôn nhân", "Lao động", "Thuế", "Tố tụng", "Hành chính"},
	IntentNoSearch:  {},
}

// retrieve embeds the standalone query, searches the vector index, and
// score-filters the candidates. Retrieval failure is never fatal: any error
// degrades to an empty result set plus NO_LAW.
func (p *Pipeline) retrieve(ctx context.Context, st *State) {
	st.Trace = append(st.Trace, "retriever")
	logger := p.getLogger(ctx)

	// NO_SEARCH short-circuits without touching the embedder or the index.
	if st.SearchLimit == 0 {
		st.RetrievedDocs = nil
		st.CheckStatus = StatusNoLaw
		return
	}

	vector, err := p.embedder.EmbedText(ctx, st.StandaloneQuery)
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		st.ErrorMessage = "retriever: " + err.Error()
		st.RetrievedDocs = nil
		st.CheckStatus = StatusNoLaw
		return
	}

	hits, err := p.vectorStore.Search(ctx, p.collection, vector, st.SearchLimit, nil)
	if err != nil {
		logger.ErrorContext(ctx, "vector search failed", "error", err)
		st.ErrorMessage = "retriever: " + err.Error()
		st.RetrievedDocs = nil
		st.CheckStatus = StatusNoLaw
		return
	}

	docs := p.filterHits(ctx, hits, st.Intent)
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Score > docs[j].Score })
	docs = dedupDocuments(docs)

	st.RetrievedDocs = docs
	if len(docs) == 0 {
		st.CheckStatus = StatusNoLaw
	}

	logger.InfoContext(ctx, "retrieval completed",
		"hits", len(hits),
		"kept", len(docs),
		"threshold", p.threshold,
		"intent", st.Intent,
	)
}

// filterHits applies the hard relevance threshold and the intent-scoped
// domain filter, then maps survivors into RetrievedDocuments.
func (p *Pipeline) filterHits(ctx context.Context, hits []vectorstore.SearchResult, intent Intent) []RetrievedDocument {
	logger := p.getLogger(ctx)
	keywords := domainKeywords[intent]

	docs := make([]RetrievedDocument, 0, len(hits))
	for _, hit := range hits {
		if hit.Score < p.threshold {
			logger.DebugContext(ctx, "hit rejected below threshold", "score", hit.Score)
			continue
		}

		lawName := stringField(hit.Meta, payloadLawName, unknownLawText)
		if len(keywords) > 0 && !matchesDomain(lawName, keywords) {
			logger.DebugContext(ctx, "hit filtered by domain", "law_name", lawName, "intent", intent)
			continue
		}

		content := stringField(hit.Meta, payloadContent, "")
		if content == "" {
			content = stringField(hit.Meta, payloadContentAlt, "")
		}

		docs = append(docs, RetrievedDocument{
			LawID:   stringField(hit.Meta, payloadLawID, unknownArticleText),
			LawName: lawName,
			Content: content,
			Score:   hit.Score,
		})
	}
	return docs
}

// dedupDocuments keeps the first (highest-scoring, given descending order)
// entry per (LawName, LawID) identity. Duplicate index entries happen when
// the same article is imported twice.
func dedupDocuments(docs []RetrievedDocument) []RetrievedDocument {
	type identity struct{ name, id string }
	seen := make(map[identity]bool, len(docs))
	out := make([]RetrievedDocument, 0, len(docs))
	for _, doc := range docs {
		key := identity{doc.LawName, doc.LawID}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, doc)
	}
	return out
}

func matchesDomain(lawName string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lawName, keyword) {
			return true
		}
	}
	return false
}

func stringField(meta map[string]any, key, fallback string) string {
	if meta == nil {
		return fallback
	}
	if value, ok := meta[key].(string); ok && value != "" {
		return value
	}
	return fallback
}
