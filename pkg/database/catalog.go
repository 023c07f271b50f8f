package database

import (
	"fmt"
	"os"
	"strings"

	"french_assessment_backend/internal/model"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the static content the questionnaire and listings are
// seeded from.
type CatalogFile struct {
	Statements map[model.Framework]map[model.Skill][]model.ProficiencyStatement `yaml:"statements"`
	Categories []model.ContentCard                                              `yaml:"categories"`
	Resources  []model.ContentCard                                              `yaml:"resources"`
}

func LoadCatalog(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c CatalogFile
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return &c, nil
}

func (c *CatalogFile) validate() error {
	seen := make(map[string]bool)
	for fw, skills := range c.Statements {
		if !fw.Valid() {
			return fmt.Errorf("unknown framework %q", fw)
		}
		for skill, sts := range skills {
			if _, ok := model.ParseSkill(string(skill)); !ok {
				return fmt.Errorf("unknown skill %q under %s", skill, fw)
			}
			for _, st := range sts {
				if st.Code == "" {
					return fmt.Errorf("statement without code under %s %s", fw, skill)
				}
				if seen[st.Code] {
					return fmt.Errorf("duplicate statement code %q", st.Code)
				}
				seen[st.Code] = true
				if st.Level < 1 || st.Level > fw.MaxLevel() {
					return fmt.Errorf("statement %q: level %d outside 1..%d", st.Code, st.Level, fw.MaxLevel())
				}
			}
		}
	}
	return nil
}

// AllStatements flattens the statements in framework, skill, file order and
// stamps their framework, skill and position.
func (c *CatalogFile) AllStatements() []model.ProficiencyStatement {
	var out []model.ProficiencyStatement
	for _, fw := range model.Frameworks {
		for _, skill := range model.Skills {
			for _, st := range c.Statements[fw][skill] {
				st.Framework = fw
				st.Skill = skill
				st.Position = len(out)
				st.Text = strings.TrimSpace(st.Text)
				out = append(out, st)
			}
		}
	}
	return out
}

// AllCards returns both listings with kind and position stamped.
func (c *CatalogFile) AllCards() []model.ContentCard {
	out := make([]model.ContentCard, 0, len(c.Categories)+len(c.Resources))
	for i, card := range c.Categories {
		card.Kind = model.CardKindCategory
		card.Position = i
		out = append(out, card)
	}
	for i, card := range c.Resources {
		card.Kind = model.CardKindResource
		card.Position = i
		out = append(out, card)
	}
	return out
}
