package core

// Document is one labeled message of a corpus
type Document struct {
	Text  string
	Label Label
}

// NewDocument creates a document from a raw corpus label and its text
func NewDocument(rawLabel, text string) (Document, error) {
	label, err := EncodeLabel(rawLabel)
	if err != nil {
		return Document{}, err
	}
	return Document{Text: text, Label: label}, nil
}
