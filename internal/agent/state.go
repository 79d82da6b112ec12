package agent

// Intent classifies a standalone legal question and determines retrieval breadth.
type Intent string

const (
	// IntentPenal covers fines, imprisonment, criminal offences, traffic violations.
	IntentPenal Intent = "SEARCH_PENAL"
	// IntentProcedure covers procedures, paperwork, filings, court process.
	IntentProcedure Intent = "SEARCH_PROCEDURE"
	// IntentCivil covers divorce, custody, land, inheritance, civil contracts.
	IntentCivil Intent = "SEARCH_CIVIL"
	// IntentNoSearch covers small talk and questions unrelated to law.
	IntentNoSearch Intent = "NO_SEARCH"
)

// defaultSearchLimits maps each intent to its retrieval breadth.
var defaultSearchLimits = map[Intent]int{
	IntentPenal:     3,
	IntentProcedure: 5,
	IntentCivil:     4,
	IntentNoSearch:  0,
}

// ParseIntent converts a raw classifier label into an Intent.
// Unknown labels report ok=false so callers can apply the safe fallback.
func ParseIntent(s string) (Intent, bool) {
	switch Intent(s) {
	case IntentPenal, IntentProcedure, IntentCivil, IntentNoSearch:
		return Intent(s), true
	}
	return "", false
}

// CheckStatus is the sufficiency checker's verdict on the retrieval outcome.
type CheckStatus string

const (
	// StatusSufficient means the evidence uniquely determines an answer.
	StatusSufficient CheckStatus = "SUFFICIENT"
	// StatusMissingInfo means relevant law was found but the user has not
	// supplied the facts needed to pick a single applicable clause.
	StatusMissingInfo CheckStatus = "MISSING_INFO"
	// StatusNoLaw means no applicable legal text was found.
	StatusNoLaw CheckStatus = "NO_LAW"
)

// ParseCheckStatus converts a raw checker label into a CheckStatus.
func ParseCheckStatus(s string) (CheckStatus, bool) {
	switch CheckStatus(s) {
	case StatusSufficient, StatusMissingInfo, StatusNoLaw:
		return CheckStatus(s), true
	}
	return "", false
}

// RetrievedDocument is one candidate legal passage returned by the vector index.
// Immutable once created; identity for deduplication is (LawName, LawID).
type RetrievedDocument struct {
	LawID   string
	LawName string
	Content string
	Score   float32
}

// Turn is a single (speaker, text) entry of the bounded chat history.
type Turn struct {
	Speaker string
	Text    string
}

// State is the pipeline state threaded through all stages. It is allocated
// fresh per request, owned exclusively by the pipeline for the lifetime of
// one run, and never persisted mid-flight.
type State struct {
	Query           string
	StandaloneQuery string
	ChatHistory     string

	HasLawContext bool
	LawContext    string

	Intent      Intent
	SearchLimit int

	RetrievedDocs []RetrievedDocument
	CheckStatus   CheckStatus

	Generation string
	Sources    []string

	// Diagnostic only; never affects control flow.
	ErrorMessage string
	Trace        []string
}
