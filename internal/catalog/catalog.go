// Package catalog holds the immutable creature, move and ability
// definitions the battle engine reads during resolution.
package catalog

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lookup is the read-only view the engine depends on.
type Lookup interface {
	Creature(id string) (*game.CreatureDefinition, error)
	Move(id string) (*game.MoveDefinition, error)
	Ability(id string) (*game.AbilityDefinition, error)
}

// Catalog is safe for concurrent use: it is never mutated after New.
type Catalog struct {
	creatures map[string]*game.CreatureDefinition
	moves     map[string]*game.MoveDefinition
	abilities map[string]*game.AbilityDefinition
	// creatureIDs is sorted so random rosters are reproducible for a seed.
	creatureIDs []string
}

// DisplayName derives a readable name from a catalog id such as
// "water_dark_serpent" or "volt-switch".
func DisplayName(id string) string {
	s := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(id))
	// Casers are stateful; build one per call.
	return cases.Title(language.English).String(s)
}

// New validates the definitions and builds the lookup tables.
func New(creatures []game.CreatureDefinition, moves []game.MoveDefinition, abilities []game.AbilityDefinition) (*Catalog, error) {
	c := &Catalog{
		creatures: make(map[string]*game.CreatureDefinition, len(creatures)),
		moves:     make(map[string]*game.MoveDefinition, len(moves)),
		abilities: make(map[string]*game.AbilityDefinition, len(abilities)),
	}
	for i := range abilities {
		a := abilities[i]
		if err := validateAbility(&a); err != nil {
			return nil, err
		}
		if _, dup := c.abilities[a.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate ability id '%s'", a.ID)
		}
		if a.Name == "" {
			a.Name = DisplayName(a.ID)
		}
		c.abilities[a.ID] = &a
	}
	for i := range moves {
		m := moves[i]
		if err := validateMove(&m); err != nil {
			return nil, err
		}
		if _, dup := c.moves[m.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate move id '%s'", m.ID)
		}
		if m.Name == "" {
			m.Name = DisplayName(m.ID)
		}
		c.moves[m.ID] = &m
	}
	for i := range creatures {
		cr := creatures[i]
		if err := c.validateCreature(&cr); err != nil {
			return nil, err
		}
		if _, dup := c.creatures[cr.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate creature id '%s'", cr.ID)
		}
		if cr.Name == "" {
			cr.Name = DisplayName(cr.ID)
		}
		c.creatures[cr.ID] = &cr
		c.creatureIDs = append(c.creatureIDs, cr.ID)
	}
	if len(c.creatures) < game.PartySize {
		return nil, fmt.Errorf("catalog: at least %d creatures are required, got %d", game.PartySize, len(c.creatures))
	}
	sort.Strings(c.creatureIDs)
	return c, nil
}

func (c *Catalog) Creature(id string) (*game.CreatureDefinition, error) {
	if d, ok := c.creatures[id]; ok {
		return d, nil
	}
	return nil, game.NotFound("creature", id)
}

func (c *Catalog) Move(id string) (*game.MoveDefinition, error) {
	if d, ok := c.moves[id]; ok {
		return d, nil
	}
	return nil, game.NotFound("move", id)
}

// Ability returns nil without error for an empty id (creature has none).
func (c *Catalog) Ability(id string) (*game.AbilityDefinition, error) {
	if id == "" {
		return nil, nil
	}
	if d, ok := c.abilities[id]; ok {
		return d, nil
	}
	return nil, game.NotFound("ability", id)
}

// Creatures lists every creature ordered by id.
func (c *Catalog) Creatures() []game.CreatureDefinition {
	out := make([]game.CreatureDefinition, 0, len(c.creatureIDs))
	for _, id := range c.creatureIDs {
		out = append(out, *c.creatures[id])
	}
	return out
}

// Moves lists every move ordered by id.
func (c *Catalog) Moves() []game.MoveDefinition {
	out := make([]game.MoveDefinition, 0, len(c.moves))
	for _, m := range c.moves {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Abilities lists every ability ordered by id.
func (c *Catalog) Abilities() []game.AbilityDefinition {
	out := make([]game.AbilityDefinition, 0, len(c.abilities))
	for _, a := range c.abilities {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RandomRoster picks n distinct creature ids.
func (c *Catalog) RandomRoster(r *rand.Rand, n int) []string {
	ids := append([]string(nil), c.creatureIDs...)
	r.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if n > len(ids) {
		n = len(ids)
	}
	return ids[:n]
}

func (c *Catalog) validateCreature(cr *game.CreatureDefinition) error {
	if strings.TrimSpace(cr.ID) == "" {
		return fmt.Errorf("catalog: creature entry missing 'id'")
	}
	if len(cr.Types) < 1 || len(cr.Types) > 2 {
		return fmt.Errorf("catalog: creature '%s' must have 1 or 2 types", cr.ID)
	}
	for _, t := range cr.Types {
		if !t.Valid() {
			return fmt.Errorf("catalog: creature '%s' has unknown type '%s'", cr.ID, t)
		}
	}
	if cr.Stats.HP <= 0 {
		return fmt.Errorf("catalog: creature '%s' must have positive hp", cr.ID)
	}
	if len(cr.MoveIDs) == 0 {
		return fmt.Errorf("catalog: creature '%s' has no moves", cr.ID)
	}
	for _, mid := range cr.MoveIDs {
		if _, ok := c.moves[mid]; !ok {
			return fmt.Errorf("catalog: creature '%s' references unknown move '%s'", cr.ID, mid)
		}
	}
	if cr.AbilityID != "" {
		if _, ok := c.abilities[cr.AbilityID]; !ok {
			return fmt.Errorf("catalog: creature '%s' references unknown ability '%s'", cr.ID, cr.AbilityID)
		}
	}
	return nil
}

func validateStatChange(owner string, sc *game.StatChange) error {
	if sc == nil {
		return fmt.Errorf("catalog: '%s' requires stat_change", owner)
	}
	if sc.Target != game.TargetSelf && sc.Target != game.TargetOpponent {
		return fmt.Errorf("catalog: '%s' stat_change target must be self or opponent", owner)
	}
	if !sc.Stat.Valid() {
		return fmt.Errorf("catalog: '%s' stat_change has unknown stat '%s'", owner, sc.Stat)
	}
	if sc.Stages == 0 || sc.Stages < game.MinStage || sc.Stages > game.MaxStage {
		return fmt.Errorf("catalog: '%s' stat_change stages must be in [-2,2] and non-zero", owner)
	}
	return nil
}

func validateMove(m *game.MoveDefinition) error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("catalog: move entry missing 'id'")
	}
	if !m.Type.Valid() {
		return fmt.Errorf("catalog: move '%s' has unknown type '%s'", m.ID, m.Type)
	}
	switch m.Category {
	case game.CategoryPhysical, game.CategoryMagical:
		if m.Power <= 0 {
			return fmt.Errorf("catalog: damaging move '%s' must have positive power", m.ID)
		}
	case game.CategoryStatus:
		if m.Power != 0 {
			return fmt.Errorf("catalog: status move '%s' must have power 0", m.ID)
		}
	default:
		return fmt.Errorf("catalog: move '%s' has unknown category '%s'", m.ID, m.Category)
	}
	if m.Effect.Kind == "" {
		m.Effect.Kind = game.EffectNone
	}
	e := m.Effect
	if m.Damaging() && !carriesDamage(e.Kind) {
		return fmt.Errorf("catalog: move '%s' effect '%s' must be a status move", m.ID, e.Kind)
	}
	switch e.Kind {
	case game.EffectNone, game.EffectProtect, game.EffectSubstitute, game.EffectDrain, game.EffectSwitchAfter:
		if e.HealPercent != 0 || e.StatChange != nil || e.Status != "" {
			return fmt.Errorf("catalog: move '%s' effect '%s' takes no parameters", m.ID, e.Kind)
		}
	case game.EffectHeal:
		if e.HealPercent < 1 || e.HealPercent > 100 {
			return fmt.Errorf("catalog: move '%s' heal_percent must be in [1,100]", m.ID)
		}
	case game.EffectStatChange:
		return validateStatChange(m.ID, e.StatChange)
	case game.EffectInflictStatus:
		switch e.Status {
		case game.ConditionPoison, game.ConditionParalysis, game.ConditionSleep:
		default:
			return fmt.Errorf("catalog: move '%s' inflicts unknown status '%s'", m.ID, e.Status)
		}
	default:
		return fmt.Errorf("catalog: move '%s' has unknown effect kind '%s'", m.ID, e.Kind)
	}
	return nil
}

// carriesDamage reports whether the engine runs the damage step for a move
// with this effect. Protect, heal, substitute and drain ignore power.
func carriesDamage(k game.EffectKind) bool {
	switch k {
	case game.EffectProtect, game.EffectHeal, game.EffectSubstitute, game.EffectDrain:
		return false
	}
	return true
}

func validateAbility(a *game.AbilityDefinition) error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("catalog: ability entry missing 'id'")
	}
	switch a.Kind {
	case game.AbilityStatChange:
		return validateStatChange(a.ID, a.StatChange)
	case game.AbilityTypeResistance:
		r := a.Resistance
		if r == nil || !r.Type.Valid() {
			return fmt.Errorf("catalog: ability '%s' requires type_resistance with a known type", a.ID)
		}
		if r.Multiplier < 0 || r.Multiplier >= 1 {
			return fmt.Errorf("catalog: ability '%s' resistance multiplier must be in [0,1)", a.ID)
		}
	case game.AbilityHeal:
		if a.HealPercent < 1 || a.HealPercent > 100 {
			return fmt.Errorf("catalog: ability '%s' heal_percent must be in [1,100]", a.ID)
		}
	default:
		return fmt.Errorf("catalog: ability '%s' has unknown kind '%s'", a.ID, a.Kind)
	}
	return nil
}
