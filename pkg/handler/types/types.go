package types

// Response records serialized by the analysis handlers.

type TranslateResponse struct {
	Original string `json:"Original DNA"`
	Cleaned  string `json:"Cleaned DNA"`
	Trimmed  string `json:"Trimmed DNA"`
	Protein  string `json:"Protein"`
	Warning  string `json:"warning,omitempty"`
	TableID  int    `json:"table"`
}

type GCContentResponse struct {
	GC_Content string `json:"GC_Content"`
}

// Codon -> occurrence count
type CodonUsageResponse map[string]int

type ErrorResponse struct {
	Error string `json:"error"`
}

type CodeTableInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
