package entity

// Target is a page to harvest plus extraction hints.
type Target struct {
	URL      string        `json:"url"`
	Label    string        `json:"label,omitempty"`
	Selector string        `json:"selector,omitempty"`
	Extract  TargetExtract `json:"extract,omitempty"`
	Price    any           `json:"price,omitempty"`
}

type TargetExtract struct {
	Category string `json:"category,omitempty"`
}

func (t Target) DisplayLabel() string {
	if t.Label != "" {
		return t.Label
	}
	return t.URL
}

func (t Target) Category() string {
	if t.Extract.Category != "" {
		return t.Extract.Category
	}
	return "unknown"
}
