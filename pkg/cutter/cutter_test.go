package cutter

import (
	"testing"

	"github.com/praetorian-inc/snip/pkg/extract"
	"github.com/praetorian-inc/snip/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New(Options{List: "2"})
	require.NoError(t, err)

	assert.Equal(t, extract.FieldsMode('\t'), c.Extractor().Mode)
	assert.Equal(t, selection.List{{1, 2}}, c.Ranges())

	res := c.Cut([]string{"a\tb", "c\td\te"})
	assert.Equal(t, []string{"b", "d"}, res.Lines)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad mode", Options{List: "1", Mode: "words"}},
		{"bad delimiter", Options{List: "1", Delimiter: "::"}},
		{"bad list", Options{List: "0"}},
		{"empty list", Options{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			assert.Error(t, err)
		})
	}

	_, err := New(Options{List: "3-1"})
	assert.True(t, selection.IsKind(err, selection.InvalidRange))
}

func TestCore_Cut(t *testing.T) {
	c, err := New(Options{List: "1,3", Mode: "fields", Delimiter: ",", OnlyDelimited: true, OutputDelimiter: ";"})
	require.NoError(t, err)

	res := c.Cut([]string{"a,b,c", "nodelim", "1,2"})
	assert.Equal(t, []string{"a;c", "1"}, res.Lines)
	assert.Equal(t, 1, res.Suppressed)
}

func TestCore_CutChars(t *testing.T) {
	c := MustNew(Options{List: "1", Mode: "chars"})
	assert.Equal(t, []string{"日", ""}, c.Cut([]string{"日本", ""}).Lines)
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Options{List: "+1"}) })
}
