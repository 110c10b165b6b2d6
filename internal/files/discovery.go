package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// statsPattern matches stats result filenames and captures the embedded
// second-resolution timestamp, e.g. stats_20240115_093000.csv
var statsPattern = regexp.MustCompile(`^stats_(\d{8}_\d{6})\.csv$`)

// timestampLayout is the layout of the timestamp embedded in filenames
const timestampLayout = "20060102_150405"

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// StatsFile is a discovered stats result file with its filename-embedded
// timestamp, which serves as the record's natural key
type StatsFile struct {
	FileInfo
	Timestamp time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindCSVFiles finds all CSV files in the specified directory
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
	// If dir is already absolute, use it directly
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(strings.ToLower(name), ".csv") {
			info, err := entry.Info()
			if err != nil {
				continue
			}

			files = append(files, FileInfo{
				Path:    filepath.Join(fullPath, name),
				Name:    name,
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
	}

	return files, nil
}

// FindStatsFiles finds all stats result files in the specified directory and
// orders them by their filename-embedded timestamp, oldest first. Files whose
// names do not match the stats pattern are ignored. An empty result is not an
// error: it signals the empty state to the aggregator.
func (d *Discovery) FindStatsFiles(dir string) ([]StatsFile, error) {
	csvFiles, err := d.FindCSVFiles(dir)
	if err != nil {
		return nil, err
	}

	var statsFiles []StatsFile
	for _, file := range csvFiles {
		matches := statsPattern.FindStringSubmatch(file.Name)
		if matches == nil {
			continue
		}

		ts, err := time.Parse(timestampLayout, matches[1])
		if err != nil {
			continue
		}

		statsFiles = append(statsFiles, StatsFile{FileInfo: file, Timestamp: ts})
	}

	sort.Slice(statsFiles, func(i, j int) bool {
		return statsFiles[i].Timestamp.Before(statsFiles[j].Timestamp)
	})

	return statsFiles, nil
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}
