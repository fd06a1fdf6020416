package game

// Type is an elemental type shared by creatures and moves.
type Type string

const (
	TypeNormal Type = "normal"
	TypeFire   Type = "fire"
	TypeWater  Type = "water"
	TypeGrass  Type = "grass"
	TypeLight  Type = "light"
	TypeDark   Type = "dark"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypeNormal, TypeFire, TypeWater, TypeGrass, TypeLight, TypeDark:
		return true
	}
	return false
}

// Valid reports whether s is one of the five stage-modifiable stats.
func (s Stat) Valid() bool {
	switch s {
	case StatAttack, StatDefense, StatMagicAttack, StatMagicDefense, StatSpeed:
		return true
	}
	return false
}

// Category selects the stat pair a move uses.
type Category string

const (
	CategoryPhysical Category = "physical"
	CategoryMagical  Category = "magical"
	CategoryStatus   Category = "status"
)

// Target is who a stat change applies to.
type Target string

const (
	TargetSelf     Target = "self"
	TargetOpponent Target = "opponent"
)

// BaseStats are a creature's immutable stats.
type BaseStats struct {
	HP           int `json:"hp" yaml:"hp"`
	Attack       int `json:"attack" yaml:"attack"`
	Defense      int `json:"defense" yaml:"defense"`
	MagicAttack  int `json:"magic_attack" yaml:"magic_attack"`
	MagicDefense int `json:"magic_defense" yaml:"magic_defense"`
	Speed        int `json:"speed" yaml:"speed"`
}

// CreatureDefinition is an immutable catalog entry.
type CreatureDefinition struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Types     []Type    `json:"types"`
	Stats     BaseStats `json:"stats"`
	MoveIDs   []string  `json:"move_ids"`
	AbilityID string    `json:"ability_id,omitempty"`
}

// HasType reports whether t is one of the creature's types.
func (c *CreatureDefinition) HasType(t Type) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

// HasMove reports whether moveID is in the creature's move list.
func (c *CreatureDefinition) HasMove(moveID string) bool {
	for _, id := range c.MoveIDs {
		if id == moveID {
			return true
		}
	}
	return false
}

// StatChange moves one stat by a number of stages.
type StatChange struct {
	Target Target `json:"target" yaml:"target"`
	Stat   Stat   `json:"stat" yaml:"stat"`
	Stages int    `json:"stages" yaml:"stages"`
}

// EffectKind tags the variant carried by a MoveEffect.
type EffectKind string

const (
	EffectNone          EffectKind = "none"
	EffectProtect       EffectKind = "protect"
	EffectHeal          EffectKind = "heal"
	EffectSubstitute    EffectKind = "substitute"
	EffectDrain         EffectKind = "drain"
	EffectStatChange    EffectKind = "stat_change"
	EffectInflictStatus EffectKind = "inflict_status"
	EffectSwitchAfter   EffectKind = "switch_after"
)

// MoveEffect is a tagged variant: Kind selects which payload field is
// meaningful. Damage comes from Power and is independent of the effect.
type MoveEffect struct {
	Kind        EffectKind      `json:"kind"`
	HealPercent int             `json:"heal_percent,omitempty"`
	StatChange  *StatChange     `json:"stat_change,omitempty"`
	Status      StatusCondition `json:"status,omitempty"`
}

// MoveDefinition is an immutable catalog entry.
type MoveDefinition struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Type     Type       `json:"type"`
	Power    int        `json:"power"`
	Priority int        `json:"priority"`
	Category Category   `json:"category"`
	Effect   MoveEffect `json:"effect"`
}

// Damaging reports whether the move goes through the damage formula.
func (m *MoveDefinition) Damaging() bool {
	return m.Power > 0 && (m.Category == CategoryPhysical || m.Category == CategoryMagical)
}

// AbilityKind tags the variant carried by an AbilityDefinition.
type AbilityKind string

const (
	AbilityStatChange     AbilityKind = "stat_change"
	AbilityTypeResistance AbilityKind = "type_resistance"
	AbilityHeal           AbilityKind = "heal"
)

// TypeResistance scales damage from moves of one type.
type TypeResistance struct {
	Type       Type    `json:"type" yaml:"type"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// AbilityDefinition is a passive or on-entry effect attached to a creature.
type AbilityDefinition struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Kind        AbilityKind     `json:"kind"`
	StatChange  *StatChange     `json:"stat_change,omitempty"`
	Resistance  *TypeResistance `json:"type_resistance,omitempty"`
	HealPercent int             `json:"heal_percent,omitempty"`
}
