package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLabel(t *testing.T) {
	tests := []struct {
		raw      string
		expected Label
	}{
		{"spam", Spam},
		{"SPAM", Spam},
		{" ham ", Ham},
		{"Ham", Ham},
		{"1", Spam},
		{"0", Ham},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			label, err := EncodeLabel(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, label)
		})
	}
}

func TestEncodeLabelUnknown(t *testing.T) {
	for _, raw := range []string{"", "junk", "2", "?"} {
		_, err := EncodeLabel(raw)
		assert.True(t, errors.Is(err, ErrUnknownLabel), "raw %q", raw)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	for _, l := range Labels {
		decoded, err := DecodeLabel(l.Index())
		require.NoError(t, err)
		assert.Equal(t, l, decoded)

		encoded, err := EncodeLabel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, encoded)
	}

	assert.Equal(t, 0, Ham.Index())
	assert.Equal(t, 1, Spam.Index())

	_, err := DecodeLabel(2)
	assert.ErrorIs(t, err, ErrUnknownLabel)
	_, err = DecodeLabel(-1)
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestLabelJSON(t *testing.T) {
	data, err := json.Marshal(map[Label]int{Spam: 3, Ham: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"spam":3,"ham":5}`, string(data))

	var decoded struct {
		Label Label `json:"label"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"label":"spam"}`), &decoded))
	assert.Equal(t, Spam, decoded.Label)

	assert.Error(t, json.Unmarshal([]byte(`{"label":"eggs"}`), &decoded))
}
