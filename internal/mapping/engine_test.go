package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbs/classifier/internal/domain"
)

func TestMapCategoriesFruitCorpus(t *testing.T) {
	items := []string{
		"nothing to see here",
		"monkey love banana",
		"apples and grapes are healthy",
		"an apple a day keeps the doctor away",
	}
	categories := []domain.Category{
		{Name: "fruit", Keywords: []string{"apple", "banana", "grape"}},
	}

	matches, err := MapCategories(items, categories, true)
	require.NoError(t, err)
	require.Len(t, matches, 4)

	assert.Equal(t, "", matches[0].KeywordString())
	assert.Equal(t, "'banana'", matches[1].KeywordString())
	// "apples" also contains "apple"; the later "grape" hit overwrites it.
	assert.Equal(t, "'grape'", matches[2].KeywordString())
	assert.Equal(t, "'apple'", matches[3].KeywordString())

	assert.Equal(t, "", matches[0].CategoryString())
	for _, m := range matches[1:] {
		assert.Equal(t, "fruit", m.CategoryString())
	}
}

func TestMapCategoriesZeroCategories(t *testing.T) {
	matches, err := MapCategories([]string{"anything", ""}, nil, true)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Empty(t, m.Keywords)
		assert.Empty(t, m.Categories)
	}
}

func TestMapCategoriesCategoryOrderPreserved(t *testing.T) {
	items := []string{"concrete pour near pump station"}
	categories := []domain.Category{
		{Name: "concrete_works", Keywords: []string{"concrete"}},
		{Name: "earthworks", Keywords: []string{"excavation"}},
		{Name: "pumps_compressors", Keywords: []string{"pump"}},
	}

	matches, err := MapCategories(items, categories, true)
	require.NoError(t, err)

	// Caller order restricted to the categories that matched.
	assert.Equal(t, "concrete_works pumps_compressors", matches[0].CategoryString())
}

func TestMapCategoriesSymmetricCaseFolding(t *testing.T) {
	items := []string{"INSTALL HVAC DUCTING"}
	categories := []domain.Category{
		{Name: "hvac_systems", Keywords: []string{"Hvac"}},
	}

	matches, err := MapCategories(items, categories, true)
	require.NoError(t, err)
	assert.Equal(t, "hvac_systems", matches[0].CategoryString())
	assert.Equal(t, "'hvac'", matches[0].KeywordString())

	// Case-sensitive mode must not match.
	matches, err = MapCategories(items, categories, false)
	require.NoError(t, err)
	assert.Empty(t, matches[0].Categories)
}

func TestMapCategoriesDeduplicatesKeywords(t *testing.T) {
	items := []string{"pump overhaul"}
	categories := []domain.Category{
		{Name: "pumps_compressors", Keywords: []string{"pump", "pump", "pump"}},
	}

	matches, err := MapCategories(items, categories, true)
	require.NoError(t, err)
	assert.Equal(t, "'pump'", matches[0].KeywordString())
}

func TestMapCategoriesOneLiteralPerMatchedCategory(t *testing.T) {
	items := []string{"pump and compressor skid"}
	categories := []domain.Category{
		{Name: "pumps_compressors", Keywords: []string{"pump", "compressor"}},
	}

	matches, err := MapCategories(items, categories, true)
	require.NoError(t, err)
	assert.Equal(t, "'compressor'", matches[0].KeywordString())
	assert.Equal(t, "pumps_compressors", matches[0].CategoryString())
}

func TestMapCategoriesUnnamedCategoryIsFatal(t *testing.T) {
	_, err := MapCategories([]string{"x"}, []domain.Category{{Name: "  ", Keywords: []string{"x"}}}, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
