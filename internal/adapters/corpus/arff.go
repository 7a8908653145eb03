package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mikey/sms-spam-filter/internal/core"
	"go.uber.org/zap"
)

// Attribute is one column declared in an ARFF header
type Attribute struct {
	Name string
	Type string
}

// IsString reports whether the attribute holds free text
func (a Attribute) IsString() bool {
	return strings.EqualFold(a.Type, "string")
}

// ARFFLoader reads attribute-relation files. The class is the attribute
// named "class", or the last one; the message text is the first other
// string attribute.
type ARFFLoader struct {
	logger *zap.Logger
}

// NewARFFLoader creates a new ARFF corpus loader
func NewARFFLoader(logger *zap.Logger) *ARFFLoader {
	return &ARFFLoader{logger: logger}
}

// Load reads every document of the file at path
func (l *ARFFLoader) Load(ctx context.Context, path string) ([]core.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	docs, err := l.Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug("Parsed ARFF corpus", zap.String("path", path), zap.Int("documents", len(docs)))
	return docs, nil
}

// Parse reads documents from r
func (l *ARFFLoader) Parse(ctx context.Context, r io.Reader) ([]core.Document, error) {
	var (
		attributes []Attribute
		inData     bool
		textIdx    = -1
		classIdx   = -1
		docs       []core.Document
	)

	scanner := newScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}

		if !inData {
			keyword, rest := cutKeyword(text)
			switch strings.ToLower(keyword) {
			case "@relation":
				l.logger.Debug("Reading relation", zap.String("relation", strings.TrimSpace(rest)))
			case "@attribute":
				attr, err := parseAttribute(rest)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				attributes = append(attributes, attr)
			case "@data":
				var err error
				textIdx, classIdx, err = selectColumns(attributes)
				if err != nil {
					return nil, err
				}
				inData = true
			default:
				return nil, fmt.Errorf("%w: line %d: unexpected header line %q", ErrMalformed, line, keyword)
			}
			continue
		}

		if strings.HasPrefix(text, "{") {
			return nil, fmt.Errorf("%w: line %d: sparse instances are not supported", ErrMalformed, line)
		}

		values, err := splitValues(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(values) != len(attributes) {
			return nil, fmt.Errorf("%w: line %d: %d values for %d attributes",
				ErrMalformed, line, len(values), len(attributes))
		}

		message := values[textIdx]
		if message.missing {
			message.text = ""
		}
		label := values[classIdx]
		if label.missing {
			return nil, fmt.Errorf("line %d: %w: missing class value", line, core.ErrUnknownLabel)
		}

		doc, err := core.NewDocument(label.text, message.text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !inData {
		return nil, fmt.Errorf("%w: no @data section", ErrMalformed)
	}
	return docs, nil
}

// selectColumns picks the text and class columns of a relation
func selectColumns(attributes []Attribute) (int, int, error) {
	if len(attributes) < 2 {
		return -1, -1, fmt.Errorf("%w: need a text and a class attribute, got %d attributes",
			ErrMalformed, len(attributes))
	}

	classIdx := len(attributes) - 1
	for i, attr := range attributes {
		if strings.EqualFold(attr.Name, "class") {
			classIdx = i
			break
		}
	}

	textIdx := -1
	for i, attr := range attributes {
		if i == classIdx {
			continue
		}
		if attr.IsString() {
			return i, classIdx, nil
		}
		if textIdx < 0 {
			textIdx = i
		}
	}
	return textIdx, classIdx, nil
}

// cutKeyword splits a header line into its @keyword and the remainder
func cutKeyword(line string) (string, string) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

// parseAttribute parses "<name> <type>" where name may be quoted
func parseAttribute(decl string) (Attribute, error) {
	var name, rest string
	if decl != "" && (decl[0] == '\'' || decl[0] == '"') {
		v, n, err := readQuoted(decl)
		if err != nil {
			return Attribute{}, err
		}
		name, rest = v, decl[n:]
	} else {
		name, rest = cutKeyword(decl)
	}

	typ := strings.TrimSpace(rest)
	if name == "" || typ == "" {
		return Attribute{}, fmt.Errorf("%w: bad attribute declaration %q", ErrMalformed, decl)
	}
	return Attribute{Name: name, Type: typ}, nil
}

type value struct {
	text    string
	missing bool
}

// splitValues splits one dense data row on commas, honoring quotes
func splitValues(row string) ([]value, error) {
	var values []value
	i := 0
	for {
		for i < len(row) && (row[i] == ' ' || row[i] == '\t') {
			i++
		}

		var v value
		if i < len(row) && (row[i] == '\'' || row[i] == '"') {
			text, n, err := readQuoted(row[i:])
			if err != nil {
				return nil, err
			}
			v.text = text
			i += n
			for i < len(row) && (row[i] == ' ' || row[i] == '\t') {
				i++
			}
		} else {
			end := strings.IndexByte(row[i:], ',')
			if end < 0 {
				end = len(row) - i
			}
			v.text = strings.TrimSpace(row[i : i+end])
			v.missing = v.text == "?"
			i += end
		}
		values = append(values, v)

		if i >= len(row) {
			return values, nil
		}
		if row[i] != ',' {
			return nil, fmt.Errorf("%w: unexpected %q after value", ErrMalformed, row[i])
		}
		i++
	}
}

// readQuoted reads a quoted token at the start of s and returns its
// unescaped content and the number of bytes consumed
func readQuoted(s string) (string, int, error) {
	quote := s[0]
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(s[i])
			}
		case c == quote:
			return b.String(), i + 1, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, fmt.Errorf("%w: unterminated quoted value", ErrMalformed)
}

var _ core.CorpusLoader = (*ARFFLoader)(nil)
