package schema

// ParsedPage holds the entries extracted from one page of source text,
// plus free-text notes recording which parsing path produced them.
type ParsedPage struct {
	PageNumber int      `json:"page_number"`
	Entries    []Entry  `json:"entries"`
	RawText    string   `json:"raw_text,omitempty"`
	Notes      []string `json:"parsing_notes,omitempty"`
}

// AddEntry appends an entry to the page.
func (p *ParsedPage) AddEntry(e Entry) {
	p.Entries = append(p.Entries, e)
}

// AddNote appends a parsing note to the page.
func (p *ParsedPage) AddNote(note string) {
	p.Notes = append(p.Notes, note)
}
