package model

import "strings"

// CardKind names one of the static listings.
type CardKind string

const (
	CardKindCategory CardKind = "category"
	CardKindResource CardKind = "resource"
)

func ParseCardKind(s string) (CardKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category", "categories":
		return CardKindCategory, true
	case "resource", "resources":
		return CardKindResource, true
	}
	return "", false
}

// ContentCard is an entry of the categories or resources listing.
// swagger:model ContentCard
type ContentCard struct {
	BaseModel
	Kind        CardKind `gorm:"size:20;index;not null" json:"kind" yaml:"-"`
	Name        string   `gorm:"size:255;not null" json:"name" yaml:"name"`
	Level       string   `gorm:"size:32" json:"level" yaml:"level"`
	Type        string   `gorm:"size:64" json:"type" yaml:"type"`
	Description string   `gorm:"type:text" json:"description" yaml:"description"`
	URL         string   `gorm:"size:512" json:"url,omitempty" yaml:"url"`
	Position    int      `gorm:"default:0" json:"position" yaml:"-"`
}

func (ContentCard) TableName() string {
	return "content_cards"
}

// FullText is the text searched by the listing's search box.
func (c ContentCard) FullText() string {
	return strings.Join([]string{c.Name, c.Level, c.Type, c.Description}, " ")
}

// CardLevels is the fixed, total level order of the listings.
var CardLevels = []string{"beginner", "intermediate", "advanced", "superior"}

// LevelOrdinal returns the tag's position in CardLevels, or -1 for a missing
// or unrecognized tag.
func LevelOrdinal(tag string) int {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for i, l := range CardLevels {
		if l == tag {
			return i
		}
	}
	return -1
}

const (
	FilterAll   = "all"
	SortByName  = "name"
	SortByLevel = "level"
)

// FilterSelection is the state of a listing's filter controls.
type FilterSelection struct {
	Level  string `form:"level" json:"level"`
	Type   string `form:"type" json:"type"`
	Search string `form:"search" json:"search"`
	Sort   string `form:"sort" json:"sort"`
}

// DefaultSelection is what the listing shows on first load.
func DefaultSelection() FilterSelection {
	return FilterSelection{Level: FilterAll, Type: FilterAll}
}

// Normalize lower-cases the selection and fills blank filters with "all".
func (s FilterSelection) Normalize() FilterSelection {
	out := FilterSelection{
		Level:  strings.ToLower(strings.TrimSpace(s.Level)),
		Type:   strings.ToLower(strings.TrimSpace(s.Type)),
		Search: strings.ToLower(s.Search),
		Sort:   strings.ToLower(strings.TrimSpace(s.Sort)),
	}
	if out.Level == "" {
		out.Level = FilterAll
	}
	if out.Type == "" {
		out.Type = FilterAll
	}
	return out
}
