package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("data"), 0644))
}

func TestFindCSVFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stats_20240115_093000.csv")
	writeFile(t, dir, "notes.txt")
	writeFile(t, dir, "REPORT.CSV")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	discovery := NewDiscovery(dir)
	files, err := discovery.FindCSVFiles(".")
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"stats_20240115_093000.csv", "REPORT.CSV"}, names)
}

func TestFindCSVFiles_MissingDirectory(t *testing.T) {
	discovery := NewDiscovery(t.TempDir())

	_, err := discovery.FindCSVFiles("does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read directory")
}

func TestFindStatsFiles_OrdersByEmbeddedTimestamp(t *testing.T) {
	dir := t.TempDir()
	// Written out of chronological order on purpose
	writeFile(t, dir, "stats_20240301_120000.csv")
	writeFile(t, dir, "stats_20240115_093000.csv")
	writeFile(t, dir, "stats_20240201_000001.csv")

	discovery := NewDiscovery(dir)
	files, err := discovery.FindStatsFiles(".")
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, "stats_20240115_093000.csv", files[0].Name)
	assert.Equal(t, "stats_20240201_000001.csv", files[1].Name)
	assert.Equal(t, "stats_20240301_120000.csv", files[2].Name)

	assert.Equal(t, time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), files[0].Timestamp)
}

func TestFindStatsFiles_IgnoresNonMatchingNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stats_20240115_093000.csv")
	writeFile(t, dir, "strategy_summary_20240115_093000.csv")
	writeFile(t, dir, "stats_2024.csv")
	writeFile(t, dir, "stats_20240115_093000.csv.bak")

	discovery := NewDiscovery(dir)
	files, err := discovery.FindStatsFiles(".")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "stats_20240115_093000.csv", files[0].Name)
}

func TestFindStatsFiles_EmptyDirectory(t *testing.T) {
	discovery := NewDiscovery(t.TempDir())

	files, err := discovery.FindStatsFiles(".")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "a.csv", ModTime: now.Add(-2 * time.Hour)},
		{Name: "b.csv", ModTime: now},
		{Name: "c.csv", ModTime: now.Add(-1 * time.Hour)},
	}

	latest, ok := GetLatestFile(files)
	require.True(t, ok)
	assert.Equal(t, "b.csv", latest.Name)

	_, ok = GetLatestFile(nil)
	assert.False(t, ok)
}
