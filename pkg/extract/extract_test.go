package extract

import (
	"testing"

	"github.com/praetorian-inc/snip/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranges(t *testing.T, list string) selection.List {
	t.Helper()
	l, err := selection.Parse(list)
	require.NoError(t, err)
	return l
}

func TestExtract_Fields(t *testing.T) {
	comma := FieldsMode(',')
	tests := []struct {
		name   string
		line   string
		ranges selection.List
		mode   Mode
		want   string
	}{
		{"first field", "a,b", selection.List{{0, 1}}, comma, "a"},
		{"range past field count", "a,b", selection.List{{0, 5}}, comma, "a,b"},
		{"range wholly past end", "a,b", selection.List{{5, 10}}, comma, ""},
		{"out of range contributes no separator", "a,b", selection.List{{0, 1}, {5, 6}}, comma, "a"},
		{"declaration order kept", "a,b,c", selection.List{{2, 3}, {0, 1}}, comma, "c,a"},
		{"duplicates repeated", "a,b,c", selection.List{{0, 1}, {0, 1}}, comma, "a,a"},
		{"overlap repeated", "a,b,c", selection.List{{0, 2}, {1, 3}}, comma, "a,b,b,c"},
		{"consecutive delimiters give empty fields", "a,,c", selection.List{{1, 3}}, comma, ",c"},
		{"empty field selected", "a,,c", selection.List{{1, 2}}, comma, ""},
		{"line without delimiter is one field", "abc", selection.List{{0, 1}}, comma, "abc"},
		{"empty line", "", selection.List{{0, 1}}, comma, ""},
		{"tab delimiter", "x\ty\tz", selection.List{{1, 2}}, FieldsMode('\t'), "y"},
		{"multibyte content", "é,ß,ü", selection.List{{1, 3}}, comma, "ß,ü"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.line, tt.ranges, tt.mode))
		})
	}
}

func TestExtract_Bytes(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		ranges selection.List
		want   string
	}{
		{"single byte", "abc", selection.List{{0, 1}}, "a"},
		{"beyond end is empty", "abc", selection.List{{5, 10}}, ""},
		{"clamped", "abc", selection.List{{1, 10}}, "bc"},
		{"concatenated in order", "abcdef", selection.List{{4, 6}, {0, 2}}, "efab"},
		{"repeated", "abc", selection.List{{0, 1}, {0, 1}}, "aa"},
		{"splits multibyte", "é", selection.List{{0, 1}}, "\xc3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.line, tt.ranges, BytesMode()))
		})
	}
}

func TestExtract_Chars(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		ranges selection.List
		want   string
	}{
		{"whole multibyte character", "é", selection.List{{0, 1}}, "é"},
		{"cjk", "日本語", selection.List{{1, 3}}, "本語"},
		{"emoji", "a😀b", selection.List{{1, 2}}, "😀"},
		{"beyond end is empty", "abc", selection.List{{3, 4}}, ""},
		{"order kept", "héllo", selection.List{{4, 5}, {1, 2}}, "oé"},
		{"invalid utf-8 becomes replacement", "\xffab", selection.List{{0, 1}}, "\ufffd"},
		{"invalid utf-8 counts as one char", "\xffab", selection.List{{1, 3}}, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.line, tt.ranges, CharsMode()))
		})
	}
}

func TestExtract_MalformedRangesAreEmpty(t *testing.T) {
	malformed := selection.List{{-1, 1}, {3, 1}, {2, 2}}
	for _, mode := range []Mode{FieldsMode(','), BytesMode(), CharsMode()} {
		t.Run(mode.String(), func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, "", Extract("a,b,c,d", malformed, mode))
			})
		})
	}

	mixed := selection.List{{-1, 1}, {1, 2}, {3, 1}}
	assert.Equal(t, "b", Extract("a,b,c,d", mixed, FieldsMode(',')))
}

func TestExtract_NeverPanicsOnShortLines(t *testing.T) {
	r := ranges(t, "1,3-5,100")
	for _, mode := range []Mode{BytesMode(), CharsMode(), FieldsMode(':')} {
		for _, line := range []string{"", "x", "x:y", "ü"} {
			assert.NotPanics(t, func() { Extract(line, r, mode) })
		}
	}
}

func TestExtractor_Line(t *testing.T) {
	r := ranges(t, "1,3")

	t.Run("output delimiter", func(t *testing.T) {
		x := &Extractor{Mode: FieldsMode(':'), Ranges: r, OutputDelimiter: " | "}
		got, ok := x.Line("root:x:0:0")
		assert.True(t, ok)
		assert.Equal(t, "root | 0", got)
	})

	t.Run("only delimited suppresses", func(t *testing.T) {
		x := &Extractor{Mode: FieldsMode(':'), Ranges: r, OnlyDelimited: true}
		_, ok := x.Line("no delimiter here")
		assert.False(t, ok)

		got, ok := x.Line("a:b:c")
		assert.True(t, ok)
		assert.Equal(t, "a:c", got)
	})

	t.Run("without only delimited passes line through", func(t *testing.T) {
		x := &Extractor{Mode: FieldsMode(':'), Ranges: r}
		got, ok := x.Line("plain")
		assert.True(t, ok)
		assert.Equal(t, "plain", got)
	})

	t.Run("field options ignored in chars mode", func(t *testing.T) {
		x := &Extractor{Mode: CharsMode(), Ranges: r, OnlyDelimited: true, OutputDelimiter: "-"}
		got, ok := x.Line("abc")
		assert.True(t, ok)
		assert.Equal(t, "ac", got)
	})
}
