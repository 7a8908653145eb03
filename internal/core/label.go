package core

import (
	"fmt"
	"strings"
)

// Label is the class of a message. The numeric value is the class index.
type Label int

const (
	Ham  Label = 0
	Spam Label = 1
)

// NumClasses is the number of labels a model distinguishes
const NumClasses = 2

// Labels lists every label in class index order
var Labels = [NumClasses]Label{Ham, Spam}

// EncodeLabel maps a raw corpus label to a Label. Both the word markers
// ("spam", "ham") and the numeric markers ("1", "0") are recognized.
func EncodeLabel(raw string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "spam", "1":
		return Spam, nil
	case "ham", "0":
		return Ham, nil
	default:
		return Ham, fmt.Errorf("%w: %q", ErrUnknownLabel, raw)
	}
}

// DecodeLabel maps a class index back to its Label
func DecodeLabel(index int) (Label, error) {
	if index < 0 || index >= NumClasses {
		return Ham, fmt.Errorf("%w: index %d", ErrUnknownLabel, index)
	}
	return Label(index), nil
}

// Index returns the class index of the label
func (l Label) Index() int {
	return int(l)
}

func (l Label) String() string {
	switch l {
	case Spam:
		return "spam"
	case Ham:
		return "ham"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// MarshalText implements encoding.TextMarshaler
func (l Label) MarshalText() ([]byte, error) {
	if l != Spam && l != Ham {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownLabel, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Label) UnmarshalText(text []byte) error {
	decoded, err := EncodeLabel(string(text))
	if err != nil {
		return err
	}
	*l = decoded
	return nil
}
