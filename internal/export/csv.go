// Package export writes both classification record sets as CSV files. The
// output encoding is configurable because some downstream spreadsheet tools
// still expect windows-1251.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"wbs/classifier/internal/domain"
)

// Exporter writes classification results to a directory.
type Exporter struct {
	dir      string
	encoding string
}

func NewExporter(dir, encoding string) *Exporter {
	return &Exporter{dir: dir, encoding: encoding}
}

// WriteLevel1 writes the per-node record set as <group>_level1.csv.
func (e *Exporter) WriteLevel1(groupID string, rows []domain.Level1Row) (string, error) {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{
		"group_id", "element_id", "title", "canonical_name", "matched_keywords", "level1_category",
	})
	for _, row := range rows {
		records = append(records, []string{
			row.GroupID, row.ID, row.Title, row.CanonicalName, row.MatchedKeywords, row.Level1Category,
		})
	}

	return e.writeFile(groupID+"_level1.csv", records)
}

// WriteLevel2 writes the per-matched-category record set as <group>_level2.csv.
func (e *Exporter) WriteLevel2(groupID string, rows []domain.Level2Row) (string, error) {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{
		"group_id", "element_id", "title", "canonical_name", "matched_keywords", "category_index", "level2_category",
	})
	for _, row := range rows {
		records = append(records, []string{
			row.GroupID, row.ID, row.Title, row.CanonicalName, row.MatchedKeywords,
			strconv.Itoa(row.CategoryIndex), row.Level2Category,
		})
	}

	return e.writeFile(groupID+"_level2.csv", records)
}

func (e *Exporter) writeFile(name string, records [][]string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	path := filepath.Join(e.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	var out io.Writer = file
	switch strings.ToLower(e.encoding) {
	case "", "utf-8", "utf8":
		// CSV package writes UTF-8 natively.
	case "windows-1251", "cp1251":
		out = transform.NewWriter(file, charmap.Windows1251.NewEncoder())
	default:
		return "", fmt.Errorf("unsupported export encoding %q", e.encoding)
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}

	return path, nil
}
