package entity

// HintSource records where an entity hint came from.
type HintSource string

const (
	HintSourceUser     HintSource = "user"
	HintSourceInferred HintSource = "inferred"
	HintSourceCached   HintSource = "cached"
)

// Hint is advisory entity information attached to a resolution context.
// Downstream stages may consume hints but never depend on them.
type Hint struct {
	Type       Format     `json:"type"`
	Value      string     `json:"value"`
	Confidence float64    `json:"confidence"`
	Source     HintSource `json:"source"`
}

// Detected is one entity reference found in a message by the detection stage.
// Position is the character offset of the first occurrence in the message,
// used for later in-place substitution.
type Detected struct {
	Type         Format  `json:"type"`
	Value        string  `json:"value"`
	OriginalText string  `json:"original_text"`
	Confidence   float64 `json:"confidence"`
	Position     int     `json:"position"`
}
