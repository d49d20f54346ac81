package schema

// Stats holds the running counters for one build pass. The ancient and
// modern counters are recomputed from scratch when the build is resolved,
// never accumulated across merge passes.
type Stats struct {
	TotalEntries    int `json:"total_entries"`
	AncientEntries  int `json:"ancient_entries"`
	ModernEntries   int `json:"modern_entries"`
	ExcludedEntries int `json:"excluded_entries"`
	Conflicts       int `json:"conflicts"`
	Variants        int `json:"variants"`
	PagesProcessed  int `json:"pages_processed"`
}

// DictionaryBuild is the final output of one build pass: the two keyed
// mappings plus the excluded and variant ledgers and the statistics record.
// Keys are cleaned, lower-cased English headwords.
type DictionaryBuild struct {
	AncientEntries map[string]string `json:"ancient_entries"`
	ModernEntries  map[string]string `json:"modern_entries"`
	Excluded       []ExcludedEntry   `json:"excluded_entries"`
	Variants       []Entry           `json:"variant_entries"`
	Stats          Stats             `json:"build_stats"`
}
