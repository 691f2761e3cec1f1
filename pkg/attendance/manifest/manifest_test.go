package manifest

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/attendance-go/pkg/attendance/models"
)

func TestBuild(t *testing.T) {
	subjects := []Subject{
		{Name: "Econ", Files: []string{"Econ (A) Attendance Sheet.xlsx"}},
		{Name: "FA-II", Pattern: "FA-II (%s) Attendance Sheet.xlsx", Sections: []string{"A", "B"}},
	}

	sources := Build("https://example.com/files/", subjects)
	require.Len(t, sources, 3)

	assert.Equal(t, "Econ (A) Attendance Sheet.xlsx", sources[0].Name)
	assert.Equal(t, "Econ", sources[0].Path)
	assert.Equal(t, "FA-II (A) Attendance Sheet.xlsx", sources[1].Name)
	assert.Equal(t, "FA-II (B) Attendance Sheet.xlsx", sources[2].Name)

	u, err := url.Parse(sources[1].URL)
	require.NoError(t, err)
	assert.Equal(t, "example.com", u.Host)
	assert.Equal(t, "/files/FA-II/FA-II (A) Attendance Sheet.xlsx", u.Path)
	assert.NotContains(t, sources[1].URL, " ")
	assert.True(t, strings.HasPrefix(sources[1].URL, "https://example.com/files/FA-II/FA-II%20"))
}

func TestBuildDeterministic(t *testing.T) {
	assert.Equal(t, Default().Sources(), Default().Sources())
}

func TestDefaultSubjects(t *testing.T) {
	sources := Default().Sources()
	// six subjects with eight sections, plus FIM(4), MR(6), SCM(3), SDM(4)
	assert.Len(t, sources, 6*8+4+6+3+4)

	seen := make(map[string]bool)
	for _, src := range sources {
		assert.False(t, seen[src.URL], "duplicate %s", src.URL)
		seen[src.URL] = true
		assert.True(t, strings.HasPrefix(src.URL, DefaultBaseURL+"/"), src.URL)
	}
	assert.Equal(t, models.Source{
		Name: "DT (A) Attendance Sheet.xlsx",
		Path: "DT",
		URL:  sources[0].URL,
	}, sources[0])
	assert.Equal(t, "SM-II (H) Attendance Sheet.xlsx", sources[len(sources)-1].Name)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	content := `{
  "subjects": [
    {"name": "HRM", "pattern": "HRM (%s) Attendance Sheet.xlsx", "sections": ["A"]},
    {"name": "SCM", "files": ["SCM-H Attendance Sheet.xlsx"]}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, m.BaseURL)

	sources := m.Sources()
	require.Len(t, sources, 2)
	assert.Equal(t, "HRM (A) Attendance Sheet.xlsx", sources[0].Name)
	assert.Equal(t, "SCM", sources[1].Path)
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]string{
		"garbage.json":    `{not json`,
		"noname.json":     `{"subjects": [{"files": ["a.xlsx"]}]}`,
		"badpattern.json": `{"subjects": [{"name": "X", "pattern": "X.xlsx", "sections": ["A"]}]}`,
	}
	for name, content := range tests {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		_, err := LoadFile(path)
		assert.Error(t, err, name)
	}

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestViewerURL(t *testing.T) {
	src := models.Source{URL: "https://example.com/a/DT%20%28A%29.xlsx"}

	viewer := ViewerURL(src)
	u, err := url.Parse(viewer)
	require.NoError(t, err)
	assert.Equal(t, "view.officeapps.live.com", u.Host)
	assert.Equal(t, src.URL, u.Query().Get("src"))

	assert.Empty(t, ViewerURL(models.Source{}))
}
