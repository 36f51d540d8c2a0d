package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbs/classifier/internal/domain"
	"wbs/classifier/internal/ruleset"
)

func testDictionary() domain.Dictionary {
	return domain.Dictionary{
		Level2: []domain.Category{
			{Name: "earthworks", Keywords: []string{"excavation", "grading"}},
			{Name: "concrete_works", Keywords: []string{"concrete", "slab", "pour"}},
			{Name: "pumps_compressors", Keywords: []string{"pump", "compressor"}},
			{Name: "engineering_services", Keywords: []string{"engineering", "feed study"}},
		},
		Level1: []domain.Category{
			{Name: "construction", Keywords: []string{"earthworks", "concrete_works"}},
			{Name: "process_equipment", Keywords: []string{"pumps_compressors"}},
			{Name: "design_and_nre", Keywords: []string{"engineering_services"}},
		},
	}
}

func testNodes() []domain.Node {
	return []domain.Node{
		{GroupID: "g1", ID: "A", RawTitle: "Civil Works", DepthLevel: 1},
		{GroupID: "g1", ID: "B", ParentID: "A", RawTitle: "Concrete Pour - Slab", DepthLevel: 2},
		{GroupID: "g1", ID: "C", ParentID: "A", RawTitle: "Feed Pump Skid", DepthLevel: 2},
		{GroupID: "g1", ID: "D", ParentID: "A", RawTitle: "Weekly Progress Meeting", DepthLevel: 2},
	}
}

func TestClassifyShapesOneLevel1RowPerNode(t *testing.T) {
	result, err := Classify(testNodes(), testDictionary(), ruleset.Default(), Options{CaseInsensitive: true})
	require.NoError(t, err)
	require.Len(t, result.Level1, 4)

	byID := make(map[string]domain.Level1Row)
	for _, row := range result.Level1 {
		byID[row.ID] = row
	}

	assert.Equal(t, "Construction", byID["B"].Level1Category)
	assert.Equal(t, "'concrete_works'", byID["B"].MatchedKeywords)
	assert.Equal(t, "concrete pour slab || civil works", byID["B"].CanonicalName)
	assert.Equal(t, "Concrete Pour - Slab", byID["B"].Title)

	assert.Equal(t, "Process Equipment", byID["C"].Level1Category)
	assert.Equal(t, "Unmapped", byID["D"].Level1Category)
	assert.Equal(t, "", byID["D"].MatchedKeywords)
}

func TestClassifyLevel2RowsPerMatchedCategory(t *testing.T) {
	result, err := Classify(testNodes(), testDictionary(), ruleset.Default(), Options{CaseInsensitive: true})
	require.NoError(t, err)

	rows := make(map[string][]domain.Level2Row)
	for _, row := range result.Level2 {
		rows[row.ID] = append(rows[row.ID], row)
	}

	// B matches concrete_works only.
	require.Len(t, rows["B"], 1)
	assert.Equal(t, 1, rows["B"][0].CategoryIndex)
	assert.Equal(t, "Concrete Works", rows["B"][0].Level2Category)
	assert.Equal(t, "'pour'", rows["B"][0].MatchedKeywords)

	// D matches nothing and still produces exactly one row.
	require.Len(t, rows["D"], 1)
	assert.Equal(t, 1, rows["D"][0].CategoryIndex)
	assert.Equal(t, "Unmapped", rows["D"][0].Level2Category)
	assert.Equal(t, "", rows["D"][0].MatchedKeywords)
}

func TestClassifyMultiMatchProducesIndexedRows(t *testing.T) {
	nodes := []domain.Node{
		{GroupID: "g1", ID: "X", RawTitle: "Excavation and concrete pour for pump foundation", DepthLevel: 1},
	}

	result, err := Classify(nodes, testDictionary(), ruleset.Default(), Options{CaseInsensitive: true})
	require.NoError(t, err)

	require.Len(t, result.Level2, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{
		result.Level2[0].CategoryIndex,
		result.Level2[1].CategoryIndex,
		result.Level2[2].CategoryIndex,
	})
	assert.Equal(t, "Earthworks", result.Level2[0].Level2Category)
	assert.Equal(t, "Concrete Works", result.Level2[1].Level2Category)
	assert.Equal(t, "Pumps & Compressors", result.Level2[2].Level2Category)

	// construction + process_equipment consolidates through the
	// process_equipment absolute override.
	require.Len(t, result.Level1, 1)
	assert.Equal(t, "Process Equipment", result.Level1[0].Level1Category)
}

func TestClassifyKeepsNodeOrder(t *testing.T) {
	result, err := Classify(testNodes(), testDictionary(), ruleset.Default(), Options{CaseInsensitive: true})
	require.NoError(t, err)

	ids := make([]string, 0, len(result.Level1))
	for _, row := range result.Level1 {
		ids = append(ids, row.ID)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids)
}

func TestClassifyInvalidDictionaryAbortsBeforeOutput(t *testing.T) {
	dict := testDictionary()
	dict.Level2 = append(dict.Level2, domain.Category{Name: "", Keywords: []string{"oops"}})

	result, err := Classify(testNodes(), dict, ruleset.Default(), Options{CaseInsensitive: true})
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestClassifyEmptyDictionaryYieldsUnmappedEverywhere(t *testing.T) {
	result, err := Classify(testNodes(), domain.Dictionary{}, ruleset.Default(), Options{CaseInsensitive: true})
	require.NoError(t, err)

	for _, row := range result.Level1 {
		assert.Equal(t, "Unmapped", row.Level1Category)
	}
	assert.Len(t, result.Level2, len(testNodes()))
}
