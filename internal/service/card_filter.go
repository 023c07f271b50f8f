package service

import (
	"sort"
	"strings"

	"french_assessment_backend/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterResult is the outcome of ApplyFilters over a card slice.
type FilterResult struct {
	// Visible has one flag per input card, in input order.
	Visible []bool
	// Order holds the indices of the visible cards in display order.
	Order []int
}

// ApplyFilters hides the cards that fail the selection and orders the rest.
// Hidden cards keep their slot in the input so they come back in their
// original relative position once the selection lets them through again.
func ApplyFilters(cards []model.ContentCard, sel model.FilterSelection) FilterResult {
	sel = sel.Normalize()

	res := FilterResult{
		Visible: make([]bool, len(cards)),
		Order:   make([]int, 0, len(cards)),
	}
	for i, card := range cards {
		if matchesSelection(card, sel) {
			res.Visible[i] = true
			res.Order = append(res.Order, i)
		}
	}

	switch sel.Sort {
	case model.SortByName:
		col := collate.New(language.French)
		sort.SliceStable(res.Order, func(a, b int) bool {
			return col.CompareString(
				strings.TrimSpace(cards[res.Order[a]].Name),
				strings.TrimSpace(cards[res.Order[b]].Name),
			) < 0
		})
	case model.SortByLevel:
		sort.SliceStable(res.Order, func(a, b int) bool {
			return model.LevelOrdinal(cards[res.Order[a]].Level) < model.LevelOrdinal(cards[res.Order[b]].Level)
		})
	}

	return res
}

func matchesSelection(card model.ContentCard, sel model.FilterSelection) bool {
	if sel.Level != model.FilterAll {
		// unrecognized tags never match a specific level
		if model.LevelOrdinal(card.Level) < 0 || strings.ToLower(strings.TrimSpace(card.Level)) != sel.Level {
			return false
		}
	}
	if sel.Type != model.FilterAll && strings.ToLower(strings.TrimSpace(card.Type)) != sel.Type {
		return false
	}
	if sel.Search != "" && !strings.Contains(strings.ToLower(card.FullText()), sel.Search) {
		return false
	}
	return true
}
