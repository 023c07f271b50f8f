package service

import (
	"context"
	"errors"
	"testing"

	"french_assessment_backend/internal/model"
	mock_service "french_assessment_backend/internal/service/mock"
	"french_assessment_backend/internal/util"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(id uint, name, level, typ string) model.ContentCard {
	c := model.ContentCard{Name: name, Level: level, Type: typ}
	c.ID = id
	return c
}

func names(cards []model.ContentCard, order []int) []string {
	out := make([]string, len(order))
	for i, idx := range order {
		out[i] = cards[idx].Name
	}
	return out
}

func sampleCards() []model.ContentCard {
	return []model.ContentCard{
		card(1, "C", "beginner", "grammar"),
		card(2, "B", "advanced", "grammar"),
		card(3, "A", "beginner", "vocab"),
	}
}

func TestApplyFilters_LevelFilterAndSorts(t *testing.T) {
	cards := sampleCards()

	byName := ApplyFilters(cards, model.FilterSelection{Level: "beginner", Type: "all", Sort: "name"})
	assert.Equal(t, []bool{true, false, true}, byName.Visible)
	assert.Equal(t, []string{"A", "C"}, names(cards, byName.Order))

	byLevel := ApplyFilters(cards, model.FilterSelection{Level: "beginner", Type: "all", Sort: "level"})
	assert.Equal(t, []string{"C", "A"}, names(cards, byLevel.Order))
}

func TestApplyFilters_DefaultKeepsOriginalOrder(t *testing.T) {
	cards := sampleCards()

	res := ApplyFilters(cards, model.DefaultSelection())

	assert.Equal(t, []bool{true, true, true}, res.Visible)
	assert.Equal(t, []int{0, 1, 2}, res.Order)
}

func TestApplyFilters_TypeAndSearchAreCaseInsensitive(t *testing.T) {
	cards := []model.ContentCard{
		card(1, "Subjonctif", "advanced", "Grammar"),
		card(2, "Café vocabulary", "beginner", "vocabulary"),
	}
	cards[1].Description = "Ordering at the CAFÉ"

	res := ApplyFilters(cards, model.FilterSelection{Type: "GRAMMAR"})
	assert.Equal(t, []bool{true, false}, res.Visible)

	res = ApplyFilters(cards, model.FilterSelection{Search: "ordering"})
	assert.Equal(t, []bool{false, true}, res.Visible)

	res = ApplyFilters(cards, model.FilterSelection{Search: "BEGINNER"})
	assert.Equal(t, []bool{false, true}, res.Visible)
}

func TestApplyFilters_HiddenCardsReturnInPlace(t *testing.T) {
	cards := sampleCards()

	hidden := ApplyFilters(cards, model.FilterSelection{Type: "vocab"})
	assert.Equal(t, []int{2}, hidden.Order)

	shown := ApplyFilters(cards, model.DefaultSelection())
	assert.Equal(t, []int{0, 1, 2}, shown.Order)
}

func TestApplyFilters_FilterOrderDoesNotMatter(t *testing.T) {
	cards := append(sampleCards(), card(4, "D", "advanced", "vocab"))

	levelThenType := ApplyFilters(cards, model.FilterSelection{Level: "advanced", Type: "vocab"})
	typeThenLevel := ApplyFilters(cards, model.FilterSelection{Type: "vocab", Level: "advanced"})

	assert.Equal(t, levelThenType, typeThenLevel)
	assert.Equal(t, []string{"D"}, names(cards, levelThenType.Order))
}

func TestApplyFilters_UnknownLevels(t *testing.T) {
	cards := []model.ContentCard{
		card(1, "Known", "intermediate", "x"),
		card(2, "Blank", "", "x"),
		card(3, "Odd", "expert", "x"),
	}

	res := ApplyFilters(cards, model.FilterSelection{Sort: "level"})
	assert.Equal(t, []string{"Blank", "Odd", "Known"}, names(cards, res.Order))

	res = ApplyFilters(cards, model.FilterSelection{Level: "expert"})
	assert.Empty(t, res.Order)
}

func TestApplyFilters_NameSortUsesFrenchCollation(t *testing.T) {
	cards := []model.ContentCard{
		card(1, "Zèbre", "", ""),
		card(2, "  école", "", ""),
		card(3, "Été", "", ""),
		card(4, "Arbre", "", ""),
	}

	res := ApplyFilters(cards, model.FilterSelection{Sort: "name"})

	assert.Equal(t, []string{"Arbre", "  école", "Été", "Zèbre"}, names(cards, res.Order))
}

func TestApplyFilters_LevelSortIsStable(t *testing.T) {
	cards := []model.ContentCard{
		card(1, "s1", "superior", ""),
		card(2, "b1", "beginner", ""),
		card(3, "s2", "superior", ""),
		card(4, "b2", "Beginner", ""),
	}

	res := ApplyFilters(cards, model.FilterSelection{Sort: "level"})

	assert.Equal(t, []string{"b1", "b2", "s1", "s2"}, names(cards, res.Order))
}

func TestCatalogService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_service.NewMockCardSource(ctrl)
	source.EXPECT().GetCards(gomock.Any(), model.CardKindResource).Return(sampleCards(), nil)

	svc := NewCatalogService(source)
	listing, err := svc.List(context.Background(), model.CardKindResource, model.FilterSelection{Type: "Grammar", Sort: "name"})
	require.NoError(t, err)

	assert.Equal(t, 3, listing.Total)
	assert.Equal(t, 2, listing.Visible)
	assert.Equal(t, "B", listing.Cards[0].Name)
	assert.Equal(t, "C", listing.Cards[1].Name)
	assert.Equal(t, map[uint]bool{1: true, 2: true, 3: false}, listing.Visibility)
	assert.Equal(t, "grammar", listing.Selection.Type)
	assert.Equal(t, "all", listing.Selection.Level)
}

func TestCatalogService_UnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewCatalogService(mock_service.NewMockCardSource(ctrl))
	_, err := svc.List(context.Background(), model.CardKind("videos"), model.DefaultSelection())

	assert.True(t, errors.Is(err, util.ErrUnknownCatalog))
}

func TestCatalogService_Facets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_service.NewMockCardSource(ctrl)
	source.EXPECT().GetCards(gomock.Any(), model.CardKindCategory).Return(append(sampleCards(), card(9, "E", "", " Grammar ")), nil)

	facets, err := NewCatalogService(source).Facets(context.Background(), model.CardKindCategory)
	require.NoError(t, err)

	assert.Equal(t, []string{"all", "beginner", "intermediate", "advanced", "superior"}, facets.Levels)
	assert.Equal(t, []string{"all", "grammar", "vocab"}, facets.Types)
	assert.Equal(t, []string{"name", "level"}, facets.Sorts)
}
