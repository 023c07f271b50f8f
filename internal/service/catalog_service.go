package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"french_assessment_backend/internal/model"
	"french_assessment_backend/internal/util"

	"github.com/samber/lo"
)

// CardSource gives the filter engine a listing's cards in their original order.
type CardSource interface {
	GetCards(ctx context.Context, kind model.CardKind) ([]model.ContentCard, error)
}

type CatalogService struct {
	Cards CardSource
}

func NewCatalogService(cards CardSource) *CatalogService {
	return &CatalogService{Cards: cards}
}

type CatalogListing struct {
	Kind       model.CardKind        `json:"kind"`
	Selection  model.FilterSelection `json:"selection"`
	Cards      []model.ContentCard   `json:"cards"`
	Visibility map[uint]bool         `json:"visibility"`
	Total      int                   `json:"total"`
	Visible    int                   `json:"visible"`
}

// List applies the selection to the listing. Cards holds the visible cards
// in display order; Visibility covers every card of the listing.
func (s *CatalogService) List(ctx context.Context, kind model.CardKind, sel model.FilterSelection) (*CatalogListing, error) {
	if kind != model.CardKindCategory && kind != model.CardKindResource {
		return nil, fmt.Errorf("%w: %q", util.ErrUnknownCatalog, kind)
	}

	cards, err := s.Cards.GetCards(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s cards: %w", kind, err)
	}

	res := ApplyFilters(cards, sel)

	visibility := make(map[uint]bool, len(cards))
	for i, card := range cards {
		visibility[card.ID] = res.Visible[i]
	}

	ordered := make([]model.ContentCard, 0, len(res.Order))
	for _, idx := range res.Order {
		ordered = append(ordered, cards[idx])
	}

	return &CatalogListing{
		Kind:       kind,
		Selection:  sel.Normalize(),
		Cards:      ordered,
		Visibility: visibility,
		Total:      len(cards),
		Visible:    len(ordered),
	}, nil
}

type CatalogFacets struct {
	Levels []string `json:"levels"`
	Types  []string `json:"types"`
	Sorts  []string `json:"sorts"`
}

// Facets lists the values the listing's filter controls can take.
func (s *CatalogService) Facets(ctx context.Context, kind model.CardKind) (*CatalogFacets, error) {
	if kind != model.CardKindCategory && kind != model.CardKindResource {
		return nil, fmt.Errorf("%w: %q", util.ErrUnknownCatalog, kind)
	}

	cards, err := s.Cards.GetCards(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s cards: %w", kind, err)
	}

	types := lo.Uniq(lo.FilterMap(cards, func(c model.ContentCard, _ int) (string, bool) {
		t := strings.ToLower(strings.TrimSpace(c.Type))
		return t, t != ""
	}))
	sort.Strings(types)

	return &CatalogFacets{
		Levels: append([]string{model.FilterAll}, model.CardLevels...),
		Types:  append([]string{model.FilterAll}, types...),
		Sorts:  []string{model.SortByName, model.SortByLevel},
	}, nil
}
