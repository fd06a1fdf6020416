package game

// StatusCondition is the single non-volatile condition a member can carry.
type StatusCondition string

const (
	ConditionNone      StatusCondition = "none"
	ConditionPoison    StatusCondition = "poison"
	ConditionParalysis StatusCondition = "paralysis"
	ConditionSleep     StatusCondition = "sleep"
)

// Stat names one of the five stage-modifiable stats.
type Stat string

const (
	StatAttack       Stat = "attack"
	StatDefense      Stat = "defense"
	StatMagicAttack  Stat = "magic_attack"
	StatMagicDefense Stat = "magic_defense"
	StatSpeed        Stat = "speed"
)

const (
	MinStage = -2
	MaxStage = 2
)

// StatStages holds the five independent stage modifiers.
type StatStages struct {
	Attack       int `json:"attack"`
	Defense      int `json:"defense"`
	MagicAttack  int `json:"magic_attack"`
	MagicDefense int `json:"magic_defense"`
	Speed        int `json:"speed"`
}

func (s *StatStages) ref(stat Stat) *int {
	switch stat {
	case StatAttack:
		return &s.Attack
	case StatDefense:
		return &s.Defense
	case StatMagicAttack:
		return &s.MagicAttack
	case StatMagicDefense:
		return &s.MagicDefense
	case StatSpeed:
		return &s.Speed
	}
	return nil
}

// Get returns the stage for stat (0 for unknown stats).
func (s StatStages) Get(stat Stat) int {
	if p := s.ref(stat); p != nil {
		return *p
	}
	return 0
}

// Apply adds delta to stat, clamps into [MinStage, MaxStage] and returns the
// change that was actually applied.
func (s *StatStages) Apply(stat Stat, delta int) int {
	p := s.ref(stat)
	if p == nil {
		return 0
	}
	next := clampStage(*p + delta)
	applied := next - *p
	*p = next
	return applied
}

func clampStage(v int) int {
	if v < MinStage {
		return MinStage
	}
	if v > MaxStage {
		return MaxStage
	}
	return v
}

// PartyMember is one creature's mutable battle state.
type PartyMember struct {
	ID                  uint            `json:"-" gorm:"primaryKey"`
	SideID              uint            `json:"-" gorm:"index"`
	Slot                int             `json:"slot"`
	CreatureID          string          `json:"creature_id" gorm:"size:64"`
	CurrentHP           int             `json:"current_hp"`
	MaxHP               int             `json:"max_hp"`
	Fainted             bool            `json:"fainted"`
	StatusCondition     StatusCondition `json:"status_condition" gorm:"size:16"`
	SleepTurnsRemaining int             `json:"sleep_turns_remaining"`
	Stages              StatStages      `json:"stat_modifiers" gorm:"embedded;embeddedPrefix:stage_"`
	HasSubstitute       bool            `json:"has_substitute"`
	SubstituteHP        int             `json:"substitute_hp"`
	HasDrainEffect      bool            `json:"has_drain_effect"`
	IsBlocking          bool            `json:"is_blocking"`
	UsedBlockLastTurn   bool            `json:"used_block_last_turn"`
}

func (PartyMember) TableName() string { return "battle_party_members" }

// NewPartyMember derives fresh battle state from a catalog definition.
func NewPartyMember(slot int, def *CreatureDefinition) PartyMember {
	m := PartyMember{Slot: slot}
	m.Reset(def)
	return m
}

// Reset overwrites the member with fresh state for def, keeping the storage
// identity (ID, SideID, Slot) so a regenerated party updates rows in place.
func (m *PartyMember) Reset(def *CreatureDefinition) {
	id, side, slot := m.ID, m.SideID, m.Slot
	*m = PartyMember{
		ID:              id,
		SideID:          side,
		Slot:            slot,
		CreatureID:      def.ID,
		CurrentHP:       def.Stats.HP,
		MaxHP:           def.Stats.HP,
		StatusCondition: ConditionNone,
	}
}

// Alive reports whether the member can still act.
func (m *PartyMember) Alive() bool { return !m.Fainted && m.CurrentHP > 0 }

// Condition returns the status condition treating an empty value as none.
func (m *PartyMember) Condition() StatusCondition {
	if m.StatusCondition == "" {
		return ConditionNone
	}
	return m.StatusCondition
}

// Asleep reports whether the member is asleep with turns remaining.
func (m *PartyMember) Asleep() bool {
	return m.Condition() == ConditionSleep && m.SleepTurnsRemaining > 0
}

// TakeDamage subtracts amount from CurrentHP, flooring at zero, and returns
// the HP actually removed.
func (m *PartyMember) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > m.CurrentHP {
		amount = m.CurrentHP
	}
	m.CurrentHP -= amount
	return amount
}

// Heal restores up to amount HP, capped at MaxHP. Fainted members cannot be
// healed.
func (m *PartyMember) Heal(amount int) int {
	if m.Fainted || amount <= 0 {
		return 0
	}
	if m.CurrentHP+amount > m.MaxHP {
		amount = m.MaxHP - m.CurrentHP
	}
	m.CurrentHP += amount
	return amount
}

// ResetStages zeroes every stat stage.
func (m *PartyMember) ResetStages() { m.Stages = StatStages{} }

// ClearTransient drops the substitute, drain and block flags.
func (m *PartyMember) ClearTransient() {
	m.HasSubstitute = false
	m.SubstituteHP = 0
	m.HasDrainEffect = false
	m.IsBlocking = false
	m.UsedBlockLastTurn = false
}

// Faint marks the member fainted. It returns false when it already was.
func (m *PartyMember) Faint() bool {
	if m.Fainted {
		return false
	}
	m.Fainted = true
	m.CurrentHP = 0
	m.ClearTransient()
	return true
}
