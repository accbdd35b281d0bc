package identify

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupByType(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.png"), pngData)
	b := writeFile(t, filepath.Join(dir, "b.png"), pngData)
	c := writeFile(t, filepath.Join(dir, "c.txt"), textData)

	cl := newClassifier(t, Options{})
	records, err := cl.ClassifyBatch([]string{a, c, b})
	require.NoError(t, err)

	groups := GroupByType(records)
	require.Equal(t, 2, groups.Len())
	require.Equal(t, []string{"PNG image", UnknownDescription}, groups.Descriptions())

	pngs, ok := groups.Get("PNG image")
	require.True(t, ok)
	require.Equal(t, []string{a, b}, paths(pngs))

	unknown, ok := groups.Get(UnknownDescription)
	require.True(t, ok)
	require.Equal(t, []string{c}, paths(unknown))

	_, ok = groups.Get("Directory")
	require.False(t, ok)
}

func TestGroupByTypeKeepsFirstSeenOrder(t *testing.T) {
	records := []Record{
		{Path: "1", Description: "z"},
		{Path: "2", Description: "a"},
		{Path: "3", Description: "z"},
		{Path: "4", Description: "m"},
	}

	groups := GroupByType(records)
	require.Equal(t, []string{"z", "a", "m"}, groups.Descriptions())
	require.Equal(t, []string{"1", "3"}, paths(groups[0].Records))
	require.Empty(t, GroupByType(nil))
}

func TestFiltersPartitionRecords(t *testing.T) {
	root := sampleTree(t)
	c := newClassifier(t, Options{})

	records, err := c.ClassifyTree(root)
	require.NoError(t, err)

	files := FilterFiles(records)
	dirs := FilterDirectories(records)
	require.Len(t, files, 3)
	require.Len(t, dirs, 4)

	// merging back by original position gives the input
	merged := make([]Record, 0, len(records))
	fi, di := 0, 0
	for _, r := range records {
		if r.IsDir {
			require.Equal(t, r, dirs[di])
			merged = append(merged, dirs[di])
			di++
		} else {
			require.Equal(t, r, files[fi])
			merged = append(merged, files[fi])
			fi++
		}
	}
	require.Equal(t, records, merged)

	for _, f := range files {
		require.False(t, f.IsDir)
		require.NotNil(t, f.Size)
	}
	for _, d := range dirs {
		require.True(t, d.IsDir)
		require.Nil(t, d.Size)
	}
}

func TestGlobFilters(t *testing.T) {
	records := []Record{
		{Path: "photos/a.png"},
		{Path: "photos/raw/b.png"},
		{Path: "docs/c.pdf"},
	}

	m, err := GlobMatcher("photos/*.png")
	require.NoError(t, err)
	require.Equal(t, []string{"photos/a.png"}, paths(FilterPaths(records, m)))

	m, err = GlobMatcher("**.png")
	require.NoError(t, err)
	require.Equal(t, []string{"photos/a.png", "photos/raw/b.png"}, paths(FilterPaths(records, m)))
	require.Equal(t, []string{"docs/c.pdf"}, paths(ExcludePaths(records, m)))

	m, err = GlobMatcher("docs/**", "**/raw/**")
	require.NoError(t, err)
	require.Equal(t, []string{"photos/raw/b.png", "docs/c.pdf"}, paths(FilterPaths(records, m)))

	_, err = GlobMatcher("[unterminated")
	require.Error(t, err)
}
