package export

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"wbs/classifier/internal/domain"
)

func level1Fixture() []domain.Level1Row {
	return []domain.Level1Row{
		{
			GroupID:         "g1",
			ID:              "B",
			Title:           "Concrete Pour - Slab",
			CanonicalName:   "concrete pour slab || civil works",
			MatchedKeywords: "'concrete_works'",
			Level1Category:  "Construction",
		},
	}
}

func TestWriteLevel1UTF8(t *testing.T) {
	e := NewExporter(t.TempDir(), "utf-8")

	path, err := e.WriteLevel1("g1", level1Fixture())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "g1_level1.csv"))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "level1_category", records[0][5])
	assert.Equal(t, "Construction", records[1][5])
	assert.Equal(t, "concrete pour slab || civil works", records[1][3])
}

func TestWriteLevel2IndexColumn(t *testing.T) {
	e := NewExporter(t.TempDir(), "utf-8")

	rows := []domain.Level2Row{
		{GroupID: "g1", ID: "X", CategoryIndex: 1, Level2Category: "Earthworks"},
		{GroupID: "g1", ID: "X", CategoryIndex: 2, Level2Category: "Concrete Works"},
		{GroupID: "g1", ID: "Y", CategoryIndex: 1, Level2Category: "Unmapped"},
	}

	path, err := e.WriteLevel2("g1", rows)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "1", records[1][5])
	assert.Equal(t, "2", records[2][5])
	assert.Equal(t, "Unmapped", records[3][6])
}

func TestWriteLevel1Windows1251(t *testing.T) {
	e := NewExporter(t.TempDir(), "windows-1251")

	rows := level1Fixture()
	rows[0].Title = "Бетонные работы"

	path, err := e.WriteLevel1("g1", rows)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	decoded := transform.NewReader(file, charmap.Windows1251.NewDecoder())
	records, err := csv.NewReader(decoded).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Бетонные работы", records[1][2])
}

func TestWriteRejectsUnknownEncoding(t *testing.T) {
	e := NewExporter(t.TempDir(), "ebcdic")

	_, err := e.WriteLevel1("g1", level1Fixture())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export encoding")
}
