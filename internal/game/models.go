package game

import (
	"sort"
	"time"
)

// Status is the lifecycle state of a Battle.
type Status string

const (
	StatusWaitingForActions Status = "waiting_for_actions"
	StatusActive            Status = "active"
	StatusWaitingForSwitch  Status = "waiting_for_switch"
	StatusFinished          Status = "finished"
)

// Winner is only meaningful once a battle is finished.
type Winner string

const (
	WinnerNone     Winner = "none"
	WinnerPlayer   Winner = "player"
	WinnerOpponent Winner = "opponent"
	WinnerDraw     Winner = "draw"
)

// SideRole identifies one of the two combatants.
type SideRole string

const (
	RolePlayer   SideRole = "player"
	RoleOpponent SideRole = "opponent"
)

// Other returns the opposing role.
func (r SideRole) Other() SideRole {
	if r == RolePlayer {
		return RoleOpponent
	}
	return RolePlayer
}

// Winner returns the Winner value that names this role.
func (r SideRole) Winner() Winner {
	if r == RolePlayer {
		return WinnerPlayer
	}
	return WinnerOpponent
}

// BattleMode tells whether the opponent is scripted or a live player.
type BattleMode string

const (
	ModeAI  BattleMode = "ai"
	ModePvP BattleMode = "pvp"
)

// PartySize is the fixed number of members per side.
const PartySize = 3

// ActionType is the kind of action a side commits for a turn.
type ActionType string

const (
	ActionMove   ActionType = "move"
	ActionSwitch ActionType = "switch"
)

// Action is a side's pending choice for the turn in progress.
type Action struct {
	Type        ActionType `json:"type"`
	MoveID      string     `json:"move_id,omitempty"`
	TargetIndex int        `json:"target_index"`
}

// MoveAction builds a move action.
func MoveAction(moveID string) *Action { return &Action{Type: ActionMove, MoveID: moveID} }

// SwitchAction builds a switch action.
func SwitchAction(target int) *Action { return &Action{Type: ActionSwitch, TargetIndex: target} }

// Battle is the aggregate root of one match. Sides are stored as a slice
// (player first) so GORM can persist them as an association.
type Battle struct {
	ID         string     `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Mode       BattleMode `json:"mode" gorm:"size:8"`
	Status     Status     `json:"status" gorm:"size:32;index"`
	Winner     Winner     `json:"winner" gorm:"size:16"`
	TurnNumber int        `json:"turn_number"`
	// Rematch keeps an AI battle going: a defeated AI party is replaced with
	// a fresh random roster and WinCount is incremented instead of finishing.
	Rematch  bool     `json:"rematch"`
	WinCount int      `json:"win_count"`
	Sides    []Side   `json:"sides" gorm:"foreignKey:BattleID;constraint:OnDelete:CASCADE"`
	LastLog  []string `json:"last_log" gorm:"serializer:json"`
}

// TableName keeps the table name stable regardless of struct renames.
func (Battle) TableName() string { return "battles" }

type Side struct {
	ID       uint     `json:"-" gorm:"primaryKey"`
	BattleID string   `json:"-" gorm:"size:36;index"`
	Role     SideRole `json:"role" gorm:"size:16"`
	// PartyIdentity is the connection id of a human participant. Nil marks
	// the side as AI controlled.
	PartyIdentity *string       `json:"party_identity,omitempty"`
	PlayerName    string        `json:"player_name"`
	ActiveIndex   int           `json:"active_index"`
	PendingAction *Action       `json:"pending_action" gorm:"serializer:json"`
	PendingSwitch bool          `json:"pending_switch"`
	Party         []PartyMember `json:"party" gorm:"foreignKey:SideID;constraint:OnDelete:CASCADE"`
}

func (Side) TableName() string { return "battle_sides" }

// IsAI reports whether the side is driven by the AI selector.
func (s *Side) IsAI() bool { return s.PartyIdentity == nil || *s.PartyIdentity == "" }

// Active returns the member referenced by ActiveIndex.
func (s *Side) Active() *PartyMember {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Party) {
		return nil
	}
	return &s.Party[s.ActiveIndex]
}

// AvailableSwitchIndices lists members that are neither fainted nor active.
func (s *Side) AvailableSwitchIndices() []int {
	out := make([]int, 0, len(s.Party))
	for i := range s.Party {
		if i == s.ActiveIndex || s.Party[i].Fainted {
			continue
		}
		out = append(out, i)
	}
	return out
}

// HasReserve reports whether a switch target exists.
func (s *Side) HasReserve() bool { return len(s.AvailableSwitchIndices()) > 0 }

// AllFainted reports whether every member of the party has fainted.
func (s *Side) AllFainted() bool {
	if len(s.Party) == 0 {
		return false
	}
	for i := range s.Party {
		if !s.Party[i].Fainted {
			return false
		}
	}
	return true
}

// NeedsSwitch reports whether the side must submit a switch before moves resume.
func (s *Side) NeedsSwitch() bool {
	if s.PendingSwitch {
		return true
	}
	a := s.Active()
	return a != nil && a.Fainted && s.HasReserve()
}

// Player returns the player side.
func (b *Battle) Player() *Side { return b.Side(RolePlayer) }

// Opponent returns the opponent side.
func (b *Battle) Opponent() *Side { return b.Side(RoleOpponent) }

// Side returns the side with the given role, or nil when absent.
func (b *Battle) Side(role SideRole) *Side {
	for i := range b.Sides {
		if b.Sides[i].Role == role {
			return &b.Sides[i]
		}
	}
	return nil
}

// SideByIdentity finds the side bound to a connection id.
func (b *Battle) SideByIdentity(identity string) *Side {
	for i := range b.Sides {
		if b.Sides[i].PartyIdentity != nil && *b.Sides[i].PartyIdentity == identity {
			return &b.Sides[i]
		}
	}
	return nil
}

// IsFinished reports whether the battle is over.
func (b *Battle) IsFinished() bool { return b.Status == StatusFinished }

// Normalize orders sides (player first) and party members by slot after a
// load, since association order is not guaranteed by the store.
func (b *Battle) Normalize() {
	sort.SliceStable(b.Sides, func(i, j int) bool {
		return b.Sides[i].Role == RolePlayer && b.Sides[j].Role != RolePlayer
	})
	for i := range b.Sides {
		p := b.Sides[i].Party
		sort.SliceStable(p, func(x, y int) bool { return p[x].Slot < p[y].Slot })
	}
}

// Clone returns a deep copy. The turn pipeline works on clones so a failed
// save leaves the authoritative copy untouched.
func (b *Battle) Clone() *Battle {
	if b == nil {
		return nil
	}
	out := *b
	out.LastLog = append([]string(nil), b.LastLog...)
	out.Sides = make([]Side, len(b.Sides))
	for i := range b.Sides {
		s := b.Sides[i]
		if s.PartyIdentity != nil {
			id := *s.PartyIdentity
			s.PartyIdentity = &id
		}
		if s.PendingAction != nil {
			a := *s.PendingAction
			s.PendingAction = &a
		}
		s.Party = append([]PartyMember(nil), b.Sides[i].Party...)
		out.Sides[i] = s
	}
	return &out
}

// PlayerProfile stores aggregate results per display name.
type PlayerProfile struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	PlayerName string `json:"player_name" gorm:"uniqueIndex;size:64"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	Draws      int    `json:"draws"`
	UpdatedAt  time.Time
}

// Unify the profiles table name with the rest of the schema.
func (PlayerProfile) TableName() string { return "player_profiles" }
