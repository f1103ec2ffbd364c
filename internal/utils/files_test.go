package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/review-digest/internal/utils"
)

func TestSafeWriteFile_Replaces(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, utils.SafeWriteFile(p, []byte("first, and longer")))
	require.NoError(t, utils.SafeWriteFile(p, []byte("second")))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))

	_, err = os.Stat(p + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file left behind")
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]any{"b": "<한글>", "a": []int{1}})
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": [\n        1\n    ],\n    \"b\": \"<한글>\"\n}", string(b))
}

func TestResolvePath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x.csv")
	cases := []struct{ base, in, want string }{
		{"/srv", "", ""},
		{"/srv", abs, abs},
		{"/srv", "data.csv", filepath.Join("/srv", "data.csv")},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, utils.ResolvePath(c.base, c.in), "ResolvePath(%q, %q)", c.base, c.in)
	}
	assert.NotEmpty(t, utils.ProgramDir())
}
