// Package dictionary reads the two keyword-category layers from an Excel
// workbook. The workbook is a collaborator boundary: structural problems in
// it are fatal and must stop the run before any output is produced.
package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	log "github.com/sirupsen/logrus"

	"wbs/classifier/internal/config"
	"wbs/classifier/internal/domain"
)

// ErrInvalidDictionary marks a structurally broken workbook.
var ErrInvalidDictionary = errors.New("invalid dictionary workbook")

// Load opens the configured workbook (fetching it first when the source is
// a URL) and returns both keyword layers. Sheet layout: two columns per
// row, (category, keyword) on the level-2 sheet and
// (level1 category, level2 category) on the level-1 sheet. Category order
// is first appearance; keywords are deduplicated per category.
func Load(cfg config.DictionaryConfig) (domain.Dictionary, error) {
	source := cfg.Source
	if isRemote(source) {
		local, err := fetchWorkbook(cfg)
		if err != nil {
			return domain.Dictionary{}, fmt.Errorf("failed to fetch dictionary workbook: %w", err)
		}
		source = local
	}

	f, err := excelize.OpenFile(source)
	if err != nil {
		return domain.Dictionary{}, fmt.Errorf("failed to open dictionary workbook: %w", err)
	}
	defer f.Close()

	level2, err := readLayer(f, cfg.Level2Sheet)
	if err != nil {
		return domain.Dictionary{}, err
	}
	level1, err := readLayer(f, cfg.Level1Sheet)
	if err != nil {
		return domain.Dictionary{}, err
	}

	log.Infof("✅ Dictionary loaded: %d level-2 categories, %d level-1 categories", len(level2), len(level1))

	return domain.Dictionary{Level2: level2, Level1: level1}, nil
}

// readLayer reads one sheet of (category, member) rows into an ordered
// category list.
func readLayer(f *excelize.File, sheet string) ([]domain.Category, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %v", ErrInvalidDictionary, sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet %q has no data rows", ErrInvalidDictionary, sheet)
	}

	order := make([]string, 0)
	keywords := make(map[string][]string)
	seen := make(map[string]map[string]struct{})

	// Row 0 is the header.
	for rowIdx, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		category := ""
		keyword := ""
		if len(row) > 0 {
			category = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			keyword = strings.TrimSpace(row[1])
		}

		if category == "" {
			return nil, fmt.Errorf("%w: sheet %q row %d has a keyword but no category", ErrInvalidDictionary, sheet, rowIdx+2)
		}
		if keyword == "" {
			log.Warnf("⚠️ Sheet %q row %d: category %q without keyword, skipping", sheet, rowIdx+2, category)
			continue
		}

		if _, ok := seen[category]; !ok {
			order = append(order, category)
			seen[category] = make(map[string]struct{})
		}
		if _, dup := seen[category][keyword]; dup {
			continue
		}
		seen[category][keyword] = struct{}{}
		keywords[category] = append(keywords[category], keyword)
	}

	if len(order) == 0 {
		return nil, fmt.Errorf("%w: sheet %q contains no categories", ErrInvalidDictionary, sheet)
	}

	categories := make([]domain.Category, 0, len(order))
	for _, name := range order {
		categories = append(categories, domain.Category{Name: name, Keywords: keywords[name]})
	}
	return categories, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
