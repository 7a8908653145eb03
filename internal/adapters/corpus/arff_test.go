package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikey/sms-spam-filter/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const smsARFF = `% SMS Spam Collection
@relation sms_test

@attribute text string
@attribute class {ham,spam}

@data
'Win money now',spam
'See you at lunch',ham
"Don't forget, it's 5pm",ham
'It\'s a \'prize\'',spam
?,ham
`

func TestARFFParse(t *testing.T) {
	loader := NewARFFLoader(zap.NewNop())

	docs, err := loader.Parse(context.Background(), strings.NewReader(smsARFF))
	require.NoError(t, err)
	require.Len(t, docs, 5)

	assert.Equal(t, core.Document{Text: "Win money now", Label: core.Spam}, docs[0])
	assert.Equal(t, core.Document{Text: "See you at lunch", Label: core.Ham}, docs[1])
	assert.Equal(t, "Don't forget, it's 5pm", docs[2].Text)
	assert.Equal(t, "It's a 'prize'", docs[3].Text)
	assert.Equal(t, core.Spam, docs[3].Label)
	assert.Equal(t, "", docs[4].Text)
}

func TestARFFParseClassIsLastAttribute(t *testing.T) {
	const data = `@relation numbered
@attribute id numeric
@attribute 'message text' string
@attribute label {0,1}
@data
1,'free entry',1
2,'call me later',0
`
	docs, err := NewARFFLoader(zap.NewNop()).Parse(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, core.Document{Text: "free entry", Label: core.Spam}, docs[0])
	assert.Equal(t, core.Document{Text: "call me later", Label: core.Ham}, docs[1])
}

func TestARFFParseNamedClassAttribute(t *testing.T) {
	const data = `@relation reordered
@attribute class {ham,spam}
@attribute text string
@data
spam,'claim your reward'
`
	docs, err := NewARFFLoader(zap.NewNop()).Parse(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, core.Document{Text: "claim your reward", Label: core.Spam}, docs[0])
}

func TestARFFParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "no data section",
			data:    "@relation x\n@attribute text string\n@attribute class {ham,spam}\n",
			wantErr: ErrMalformed,
		},
		{
			name:    "single attribute",
			data:    "@relation x\n@attribute class {ham,spam}\n@data\nham\n",
			wantErr: ErrMalformed,
		},
		{
			name:    "sparse row",
			data:    "@relation x\n@attribute text string\n@attribute class {ham,spam}\n@data\n{0 'hi',1 ham}\n",
			wantErr: ErrMalformed,
		},
		{
			name:    "wrong value count",
			data:    "@relation x\n@attribute text string\n@attribute class {ham,spam}\n@data\n'hi',ham,extra\n",
			wantErr: ErrMalformed,
		},
		{
			name:    "unterminated quote",
			data:    "@relation x\n@attribute text string\n@attribute class {ham,spam}\n@data\n'hi,ham\n",
			wantErr: ErrMalformed,
		},
		{
			name:    "unknown label",
			data:    "@relation x\n@attribute text string\n@attribute class {ham,spam}\n@data\n'hi',maybe\n",
			wantErr: core.ErrUnknownLabel,
		},
		{
			name:    "missing label",
			data:    "@relation x\n@attribute text string\n@attribute class {ham,spam}\n@data\n'hi',?\n",
			wantErr: core.ErrUnknownLabel,
		},
		{
			name:    "unknown header",
			data:    "@relation x\n@bogus\n",
			wantErr: ErrMalformed,
		},
	}

	loader := NewARFFLoader(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Parse(context.Background(), strings.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestARFFLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sms.arff")
	require.NoError(t, os.WriteFile(path, []byte(smsARFF), 0o644))

	docs, err := NewARFFLoader(zap.NewNop()).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, docs, 5)

	_, err = NewARFFLoader(zap.NewNop()).Load(context.Background(), filepath.Join(t.TempDir(), "missing.arff"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSplitValues(t *testing.T) {
	values, err := splitValues(`  'a, b' , plain ,?,"x\ty"`)
	require.NoError(t, err)
	require.Len(t, values, 4)
	assert.Equal(t, value{text: "a, b"}, values[0])
	assert.Equal(t, value{text: "plain"}, values[1])
	assert.Equal(t, value{text: "?", missing: true}, values[2])
	assert.Equal(t, value{text: "x\ty"}, values[3])

	_, err = splitValues(`'a' b`)
	assert.ErrorIs(t, err, ErrMalformed)
}
