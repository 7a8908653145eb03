package core

// FeatureVector marks the presence (1) or absence (0) of each vocabulary token
type FeatureVector []uint8

// Active returns the indices of the features that are set
func (fv FeatureVector) Active() []int {
	var active []int
	for i, v := range fv {
		if v != 0 {
			active = append(active, i)
		}
	}
	return active
}

// Vectorize projects text onto the vocabulary. Tokens missing from the
// vocabulary are ignored, so the result is always vocab.Len() long.
func Vectorize(vocab *Vocabulary, text string) FeatureVector {
	fv := make(FeatureVector, vocab.Len())
	for _, token := range Tokenize(text) {
		if i, ok := vocab.Index(token); ok {
			fv[i] = 1
		}
	}
	return fv
}

// Row is one vectorized, labeled training example
type Row struct {
	Features FeatureVector
	Label    Label
}

// TrainingMatrix holds one row per training document. Width is the
// vocabulary size every row was vectorized against.
type TrainingMatrix struct {
	Width int
	Rows  []Row
}

// BuildMatrix vectorizes every document against the vocabulary
func BuildMatrix(vocab *Vocabulary, docs []Document) *TrainingMatrix {
	rows := make([]Row, len(docs))
	for i, doc := range docs {
		rows[i] = Row{Features: Vectorize(vocab, doc.Text), Label: doc.Label}
	}
	return &TrainingMatrix{Width: vocab.Len(), Rows: rows}
}

// Len returns the number of rows
func (m *TrainingMatrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Rows)
}

// subset returns a matrix over the given rows. Feature vectors are shared, not copied.
func (m *TrainingMatrix) subset(indices []int) *TrainingMatrix {
	rows := make([]Row, len(indices))
	for i, idx := range indices {
		rows[i] = m.Rows[idx]
	}
	return &TrainingMatrix{Width: m.Width, Rows: rows}
}
