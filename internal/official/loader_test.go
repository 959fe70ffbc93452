package official_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-hijri/internal/official"
)

func writeTableFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "months.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EmbeddedData(t *testing.T) {
	tbl, err := official.Load()
	require.NoError(t, err)

	r, ok := tbl.CoveredRange()
	require.True(t, ok)
	assert.Equal(t, 1442, r.MinYear)
	assert.Equal(t, 1447, r.MaxYear)

	// The shipped data must agree with the published conversion for
	// 3 Jumada al-Thani 1446 (5 December 2024).
	j, ok := tbl.ToJDN(1446, 6, 3)
	require.True(t, ok)
	assert.Equal(t, 2460650, j)

	// 1447 is still partial in the shipped data.
	_, ok = tbl.YearLength(1447)
	assert.False(t, ok)
}

func TestLoadFile_Override(t *testing.T) {
	path := writeTableFile(t, `{"1445": [30, 29, 30, 29, 30, 29, 30, 29, 30, 29, 30, 30]}`)

	tbl, err := official.LoadFile(path)
	require.NoError(t, err)

	r, ok := tbl.CoveredRange()
	require.True(t, ok)
	assert.Equal(t, official.Range{MinYear: 1445, MaxYear: 1445}, r)

	yl, ok := tbl.YearLength(1445)
	require.True(t, ok)
	assert.Equal(t, 355, yl)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := official.LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadFile_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed JSON", `{"1445": [30, 29`},
		{"non-numeric year", `{"fourteen": [30, 29]}`},
		{"year below domain", `{"0": [30, 29]}`},
		{"year above domain", `{"5001": [30, 29]}`},
		{"empty month sequence", `{"1445": []}`},
		{"thirteen months", `{"1445": [30,29,30,29,30,29,30,29,30,29,30,29,30]}`},
		{"month length out of range", `{"1445": [30, 28]}`},
		{"empty table", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTableFile(t, tt.content)
			_, err := official.LoadFile(path)
			assert.Error(t, err)
		})
	}
}
