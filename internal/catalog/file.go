package catalog

import (
	_ "embed"
	"fmt"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

type creatureEntry struct {
	ID      string         `yaml:"id"`
	Name    string         `yaml:"name"`
	Types   []game.Type    `yaml:"types"`
	Stats   game.BaseStats `yaml:"stats"`
	Moves   []string       `yaml:"moves"`
	Ability string         `yaml:"ability"`
}

type effectEntry struct {
	Kind        game.EffectKind      `yaml:"kind"`
	HealPercent int                  `yaml:"heal_percent"`
	StatChange  *game.StatChange     `yaml:"stat_change"`
	Status      game.StatusCondition `yaml:"status"`
}

type moveEntry struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Type     game.Type     `yaml:"type"`
	Power    int           `yaml:"power"`
	Priority int           `yaml:"priority"`
	Category game.Category `yaml:"category"`
	Effect   *effectEntry  `yaml:"effect"`
}

type abilityEntry struct {
	ID             string               `yaml:"id"`
	Name           string               `yaml:"name"`
	Description    string               `yaml:"description"`
	Kind           game.AbilityKind     `yaml:"kind"`
	StatChange     *game.StatChange     `yaml:"stat_change"`
	TypeResistance *game.TypeResistance `yaml:"type_resistance"`
	HealPercent    int                  `yaml:"heal_percent"`
}

// File is the YAML layout of the catalog lists. It is embedded inline in the
// server configuration file.
type File struct {
	CreatureList []creatureEntry `yaml:"creature_list"`
	MoveList     []moveEntry     `yaml:"move_list"`
	AbilityList  []abilityEntry  `yaml:"ability_list"`
}

// Empty reports whether no list was provided.
func (f File) Empty() bool {
	return len(f.CreatureList) == 0 && len(f.MoveList) == 0 && len(f.AbilityList) == 0
}

// Parse decodes catalog YAML.
func Parse(b []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return f, nil
}

// Default returns the catalog shipped with the server.
func Default() (*Catalog, error) {
	f, err := Parse(defaultCatalogYAML)
	if err != nil {
		return nil, err
	}
	return FromFile(f)
}

// FromFile converts and validates the YAML lists.
func FromFile(f File) (*Catalog, error) {
	creatures := make([]game.CreatureDefinition, 0, len(f.CreatureList))
	for _, c := range f.CreatureList {
		creatures = append(creatures, game.CreatureDefinition{
			ID:        c.ID,
			Name:      c.Name,
			Types:     c.Types,
			Stats:     c.Stats,
			MoveIDs:   c.Moves,
			AbilityID: c.Ability,
		})
	}
	moves := make([]game.MoveDefinition, 0, len(f.MoveList))
	for _, m := range f.MoveList {
		def := game.MoveDefinition{
			ID:       m.ID,
			Name:     m.Name,
			Type:     m.Type,
			Power:    m.Power,
			Priority: m.Priority,
			Category: m.Category,
			Effect:   game.MoveEffect{Kind: game.EffectNone},
		}
		if m.Effect != nil {
			def.Effect = game.MoveEffect{
				Kind:        m.Effect.Kind,
				HealPercent: m.Effect.HealPercent,
				StatChange:  m.Effect.StatChange,
				Status:      m.Effect.Status,
			}
		}
		moves = append(moves, def)
	}
	abilities := make([]game.AbilityDefinition, 0, len(f.AbilityList))
	for _, a := range f.AbilityList {
		abilities = append(abilities, game.AbilityDefinition{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Kind:        a.Kind,
			StatChange:  a.StatChange,
			Resistance:  a.TypeResistance,
			HealPercent: a.HealPercent,
		})
	}
	return New(creatures, moves, abilities)
}
