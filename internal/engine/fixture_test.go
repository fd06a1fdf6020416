package engine

import (
	"math/rand"
	"testing"

	"github.com/shotam27/NoGambleMonsterBattle/internal/catalog"
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"

	"github.com/stretchr/testify/require"
)

func physical(id string, power, priority int) game.MoveDefinition {
	return game.MoveDefinition{ID: id, Type: game.TypeNormal, Power: power, Priority: priority, Category: game.CategoryPhysical}
}

func statusMove(id string, eff game.MoveEffect) game.MoveDefinition {
	return game.MoveDefinition{ID: id, Type: game.TypeNormal, Category: game.CategoryStatus, Effect: eff}
}

var testMoves = []game.MoveDefinition{
	physical("tackle", 80, 0),
	physical("jab", 40, 0),
	physical("slam", 90, 0),
	physical("quick", 40, 1),
	{ID: "pivot", Type: game.TypeNormal, Power: 40, Category: game.CategoryPhysical, Effect: game.MoveEffect{Kind: game.EffectSwitchAfter}},
	statusMove("guard", game.MoveEffect{Kind: game.EffectProtect}),
	statusMove("toxin", game.MoveEffect{Kind: game.EffectInflictStatus, Status: game.ConditionPoison}),
	statusMove("lull", game.MoveEffect{Kind: game.EffectInflictStatus, Status: game.ConditionSleep}),
	statusMove("seed", game.MoveEffect{Kind: game.EffectDrain}),
	statusMove("decoy", game.MoveEffect{Kind: game.EffectSubstitute}),
	statusMove("mend", game.MoveEffect{Kind: game.EffectHeal, HealPercent: 50}),
	statusMove("growl", game.MoveEffect{Kind: game.EffectStatChange, StatChange: &game.StatChange{Target: game.TargetOpponent, Stat: game.StatAttack, Stages: -1}}),
	statusMove("sharpen", game.MoveEffect{Kind: game.EffectStatChange, StatChange: &game.StatChange{Target: game.TargetSelf, Stat: game.StatAttack, Stages: 2}}),
}

var testAbilities = []game.AbilityDefinition{
	{ID: "menace", Kind: game.AbilityStatChange, StatChange: &game.StatChange{Target: game.TargetOpponent, Stat: game.StatAttack, Stages: -1}},
	{ID: "null-normal", Kind: game.AbilityTypeResistance, Resistance: &game.TypeResistance{Type: game.TypeNormal, Multiplier: 0}},
}

func allMoveIDs() []string {
	ids := make([]string, 0, len(testMoves))
	for _, m := range testMoves {
		ids = append(ids, m.ID)
	}
	return ids
}

// Every creature is fire typed so normal moves carry no STAB and hit for
// neutral damage.
func creature(id string, hp, speed int, ability string) game.CreatureDefinition {
	return game.CreatureDefinition{
		ID:        id,
		Types:     []game.Type{game.TypeFire},
		Stats:     game.BaseStats{HP: hp, Attack: 100, Defense: 100, MagicAttack: 100, MagicDefense: 100, Speed: speed},
		MoveIDs:   allMoveIDs(),
		AbilityID: ability,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := catalog.New([]game.CreatureDefinition{
		creature("tank", 160, 50, ""),
		creature("runner", 100, 120, ""),
		creature("wall", 100, 10, ""),
		creature("menacer", 100, 60, "menace"),
		creature("phantom", 100, 40, "null-normal"),
	}, testMoves, testAbilities)
	require.NoError(t, err)
	return New(cat)
}

func testRNG() *rand.Rand { return rand.New(rand.NewSource(7)) }

// newPvE builds a human player against an AI opponent.
func newPvE(t *testing.T, e *Engine, player, opponent []string) *game.Battle {
	t.Helper()
	id := "conn-player"
	b, err := e.NewBattle("b-1", game.ModeAI,
		SideSpec{Identity: &id, PlayerName: "Ash", Roster: player},
		SideSpec{PlayerName: "Rival", Roster: opponent},
		false, testRNG())
	require.NoError(t, err)
	return b
}

// submit records both actions and resolves the turn.
func submit(t *testing.T, e *Engine, b *game.Battle, player, opponent *game.Action) *TurnResult {
	t.Helper()
	if player != nil {
		require.NoError(t, e.ValidateAction(b, game.RolePlayer, player))
		b.Player().PendingAction = player
	}
	if opponent != nil {
		require.NoError(t, e.ValidateAction(b, game.RoleOpponent, opponent))
		b.Opponent().PendingAction = opponent
	}
	res, err := e.ResolveTurn(b, testRNG())
	require.NoError(t, err)
	return res
}
