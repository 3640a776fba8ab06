package refdata_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-profiles-api/internal/refdata"
)

func TestDefaultTable(t *testing.T) {
	table, err := refdata.Default()
	require.NoError(t, err)

	assert.True(t, table.HasCourse("B.Tech"))
	assert.Contains(t, table.BranchesFor("B.Tech"), "CSE")
	assert.True(t, table.HasBranch("MBA", "Finance"))
	assert.False(t, table.HasBranch("MBA", "CSE"))
	assert.Equal(t, "B.Tech", table.Courses()[0])
}

func TestParse_PreservesOrder(t *testing.T) {
	table, err := refdata.Parse([]byte(`
Zoology: [Marine, Wildlife]
Arts: [History]
B.Tech: [CSE, ECE]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Zoology", "Arts", "B.Tech"}, table.Courses())
	assert.Equal(t, []string{"CSE", "ECE"}, table.BranchesFor("B.Tech"))
	assert.Equal(t, []refdata.Entry{
		{Course: "Zoology", Branches: []string{"Marine", "Wildlife"}},
		{Course: "Arts", Branches: []string{"History"}},
		{Course: "B.Tech", Branches: []string{"CSE", "ECE"}},
	}, table.Entries())
}

func TestBranchesFor_UnknownCourse(t *testing.T) {
	table, err := refdata.Parse([]byte(`{"B.Tech": ["CSE"]}`))
	require.NoError(t, err)

	got := table.BranchesFor("B.Arch")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBranchesFor_ReturnsCopy(t *testing.T) {
	table, err := refdata.Parse([]byte(`{"B.Tech": ["CSE", "ECE"]}`))
	require.NoError(t, err)

	got := table.BranchesFor("B.Tech")
	got[0] = "Mechanical"

	assert.Equal(t, []string{"CSE", "ECE"}, table.BranchesFor("B.Tech"))
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty document", ``},
		{"not an object", `["CSE", "ECE"]`},
		{"empty object", `{}`},
		{"branches not a list", `{"B.Tech": "CSE"}`},
		{"empty branch list", `{"B.Tech": []}`},
		{"non-string branch", `{"B.Tech": ["CSE", 7]}`},
		{"empty branch name", `{"B.Tech": [""]}`},
		{"duplicate branch", `{"B.Tech": ["CSE", "CSE"]}`},
		{"broken syntax", `{"B.Tech": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := refdata.Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, refdata.ErrUnavailable)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses embedded table", func(t *testing.T) {
		table, err := refdata.Load("")
		require.NoError(t, err)
		assert.True(t, table.HasCourse("B.Tech"))
	})

	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "courses.yaml")
		require.NoError(t, os.WriteFile(path, []byte("B.Arch: [Design]\n"), 0o600))

		table, err := refdata.Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Design"}, table.BranchesFor("B.Arch"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := refdata.Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, refdata.ErrUnavailable)
	})
}

func TestConcurrentReads(t *testing.T) {
	table, err := refdata.Default()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = table.HasBranch("B.Tech", "CSE")
				_ = table.BranchesFor("M.Tech")
			}
		}()
	}
	wg.Wait()
}
