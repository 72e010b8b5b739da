package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlatten(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Entry
	}{
		{
			name: "headings",
			in:   "# aaa\n## bbb\n### ccc\n# ddd",
			want: []Entry{{1, "aaa"}, {2, "bbb"}, {3, "ccc"}, {1, "ddd"}},
		},
		{
			name: "bullets",
			in:   "- aaa\n  - bbb\n    - ccc\n- ddd",
			want: []Entry{{1, "aaa"}, {2, "bbb"}, {3, "ccc"}, {1, "ddd"}},
		},
		{
			name: "ordered",
			in:   "1. aaa\n  2. bbb\n    3. ccc\n1. ddd",
			want: []Entry{{1, "aaa"}, {2, "bbb"}, {3, "ccc"}, {1, "ddd"}},
		},
		{
			name: "mixed",
			in:   "# aaa\n## bbb\n- ccc\n  - ddd\n# eee",
			want: []Entry{{1, "aaa"}, {2, "bbb"}, {3, "ccc"}, {4, "ddd"}, {1, "eee"}},
		},
		{
			name: "skipped heading level",
			in:   "# aaa\n### bbb",
			want: []Entry{{1, "aaa"}, {2, "bbb"}},
		},
		{
			name: "wide indentation",
			in:   "- aaa\n    - bbb",
			want: []Entry{{1, "aaa"}, {2, "bbb"}},
		},
		{
			name: "unknown lines skipped",
			in:   "intro\n- aaa\n\n   - odd\n#nospace\n- bbb",
			want: []Entry{{1, "aaa"}, {1, "bbb"}},
		},
		{
			name: "only dash bullets",
			in:   "* aaa\n+ bbb\n- ccc",
			want: []Entry{{1, "ccc"}},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, forest.Flatten())
		})
	}
}

func TestParseTree(t *testing.T) {
	forest, err := Parse("# aaa\n- bbb\n## ccc")
	require.NoError(t, err)

	require.Len(t, forest, 1)
	root := forest[0]
	assert.Equal(t, "aaa", root.Label)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "bbb", root.Children[0].Label)
	assert.Equal(t, "ccc", root.Children[1].Label)
}

func TestParseInvalidUTF8(t *testing.T) {
	_, err := Parse("- ok\n- \xff\xfe")
	assert.ErrorIs(t, err, ErrParse)
}

func TestFlattenDepthNeverJumps(t *testing.T) {
	forest, err := Parse("### deep\n- a\n      - b\n# top\n    - c")
	require.NoError(t, err)

	prev := 0
	for _, e := range forest.Flatten() {
		assert.GreaterOrEqual(t, e.Depth, 1)
		assert.LessOrEqual(t, e.Depth, prev+1, "entry %q", e.Label)
		prev = e.Depth
	}
}
