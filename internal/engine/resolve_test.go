package engine

import (
	"testing"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tank   = []string{"tank", "runner", "wall"}
	runner = []string{"runner", "tank", "wall"}
	wall   = []string{"wall", "runner", "tank"}
)

func TestResolveTurn_NeutralHit(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, wall)

	res := submit(t, e, b, game.MoveAction("tackle"), game.MoveAction("sharpen"))

	// floor(100*80*1.0*1.0 / (1.5*(100+120))) = 24
	assert.Equal(t, 76, b.Opponent().Active().CurrentHP)
	assert.Equal(t, 160, b.Player().Active().CurrentHP)
	assert.Equal(t, 2, b.TurnNumber)
	assert.Equal(t, game.StatusWaitingForActions, b.Status)
	assert.Equal(t, game.WinnerNone, b.Winner)
	assert.Nil(t, b.Player().PendingAction)
	assert.Nil(t, b.Opponent().PendingAction)
	assert.False(t, res.SwitchOnly)
	assert.Equal(t, res.Log, b.LastLog)
	assert.Contains(t, res.Log, "Rival's Wall takes 24 damage")
}

func TestResolveTurn_NotReady(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, wall)
	b.Player().PendingAction = game.MoveAction("tackle")

	_, err := e.ResolveTurn(b, testRNG())
	assert.True(t, game.IsIllegalState(err))
	assert.Equal(t, game.StatusWaitingForActions, b.Status)
}

func TestSubstitute(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, wall)
	def := b.Opponent().Active()
	def.HasSubstitute = true
	def.SubstituteHP = 25

	submit(t, e, b, game.MoveAction("toxin"), game.MoveAction("sharpen"))
	assert.Equal(t, game.ConditionNone, def.Condition(), "status move blocked by substitute")
	assert.True(t, def.HasSubstitute)

	submit(t, e, b, game.MoveAction("jab"), game.MoveAction("sharpen"))
	assert.Equal(t, 100, def.CurrentHP, "weak hit absorbed")
	assert.True(t, def.HasSubstitute)

	submit(t, e, b, game.MoveAction("slam"), game.MoveAction("sharpen"))
	assert.Equal(t, 100, def.CurrentHP, "strong hit breaks the substitute without real damage")
	assert.False(t, def.HasSubstitute)

	submit(t, e, b, game.MoveAction("slam"), game.MoveAction("sharpen"))
	assert.Less(t, def.CurrentHP, 100)
}

func TestSubstituteCreation(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, wall)
	m := b.Player().Active()

	submit(t, e, b, game.MoveAction("decoy"), game.MoveAction("sharpen"))
	assert.Equal(t, 120, m.CurrentHP)
	assert.True(t, m.HasSubstitute)
	assert.Equal(t, 40, m.SubstituteHP)

	submit(t, e, b, game.MoveAction("decoy"), game.MoveAction("sharpen"))
	assert.Equal(t, 120, m.CurrentHP, "second substitute fails")

	m.HasSubstitute = false
	m.CurrentHP = 40
	submit(t, e, b, game.MoveAction("decoy"), game.MoveAction("sharpen"))
	assert.Equal(t, 40, m.CurrentHP)
	assert.False(t, m.HasSubstitute, "hp equal to the cost is not enough")
}

func TestDrainTick(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, wall)
	x := b.Player().Active()
	y := b.Opponent().Active()
	x.HasDrainEffect = true
	y.CurrentHP = 50

	submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("sharpen"))
	assert.Equal(t, 140, x.CurrentHP)
	assert.Equal(t, 70, y.CurrentHP)

	y.CurrentHP = 95
	submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("sharpen"))
	assert.Equal(t, 120, x.CurrentHP)
	assert.Equal(t, 100, y.CurrentHP, "transfer capped at max hp")
}

func TestDrainMoveAfflictsTarget(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, wall)

	submit(t, e, b, game.MoveAction("seed"), game.MoveAction("sharpen"))
	assert.False(t, b.Player().Active().HasDrainEffect)
	assert.True(t, b.Opponent().Active().HasDrainEffect)
	assert.Equal(t, 88, b.Opponent().Active().CurrentHP)
}

func TestPoisonTick(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, wall)
	m := b.Player().Active()
	m.StatusCondition = game.ConditionPoison

	submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("sharpen"))
	assert.Equal(t, 140, m.CurrentHP)
	submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("sharpen"))
	assert.Equal(t, 120, m.CurrentHP)
}

func TestStatusTicksBothSidesAfterForcedSwitch(t *testing.T) {
	e := newTestEngine(t)

	t.Run("player faints first", func(t *testing.T) {
		b := newPvE(t, e, tank, wall)
		p, o := b.Player().Active(), b.Opponent().Active()
		p.StatusCondition = game.ConditionPoison
		p.CurrentHP = 5
		o.StatusCondition = game.ConditionPoison

		res := submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("sharpen"))

		require.Equal(t, game.StatusWaitingForSwitch, b.Status)
		assert.True(t, p.Fainted)
		assert.True(t, b.Player().PendingSwitch)
		assert.Equal(t, 88, o.CurrentHP)
		assert.Contains(t, res.Log, "Rival's Wall is hurt by poison and loses 12 HP")
		assert.Equal(t, 1, b.TurnNumber)
	})

	t.Run("player faints, opponent wakes", func(t *testing.T) {
		b := newPvE(t, e, tank, wall)
		p, o := b.Player().Active(), b.Opponent().Active()
		p.StatusCondition = game.ConditionPoison
		p.CurrentHP = 5
		o.StatusCondition = game.ConditionSleep
		o.SleepTurnsRemaining = 1
		o.HasDrainEffect = true

		submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("sharpen"))

		require.Equal(t, game.StatusWaitingForSwitch, b.Status)
		assert.Equal(t, game.ConditionNone, o.Condition())
		assert.Equal(t, 88, o.CurrentHP, "drain still ticks")
	})

	t.Run("opponent faints second", func(t *testing.T) {
		b := newPvE(t, e, tank, wall)
		p, o := b.Player().Active(), b.Opponent().Active()
		p.StatusCondition = game.ConditionPoison
		o.StatusCondition = game.ConditionPoison
		o.CurrentHP = 5

		submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("sharpen"))

		assert.Equal(t, 140, p.CurrentHP)
		assert.True(t, o.Fainted)
		assert.Equal(t, 1, b.Opponent().ActiveIndex)
		assert.Equal(t, game.StatusWaitingForActions, b.Status)
		assert.Equal(t, 2, b.TurnNumber)
	})
}

func TestPoisonInflicted(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, wall)

	submit(t, e, b, game.MoveAction("toxin"), game.MoveAction("sharpen"))
	assert.Equal(t, game.ConditionPoison, b.Opponent().Active().Condition())
	assert.Equal(t, 88, b.Opponent().Active().CurrentHP)
}

func TestFaintLastMemberFinishes(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, runner)
	p := b.Player()
	for _, i := range []int{1, 2} {
		p.Party[i].Faint()
	}
	m := p.Active()
	m.CurrentHP = 1
	m.HasDrainEffect = true
	m.UsedBlockLastTurn = true

	submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("tackle"))

	assert.True(t, m.Fainted)
	assert.Equal(t, 0, m.CurrentHP)
	assert.False(t, m.HasDrainEffect)
	assert.False(t, m.HasSubstitute)
	assert.False(t, m.IsBlocking)
	assert.Equal(t, game.StatusFinished, b.Status)
	assert.Equal(t, game.WinnerOpponent, b.Winner)

	err := e.ValidateAction(b, game.RolePlayer, game.MoveAction("tackle"))
	assert.True(t, game.IsIllegalState(err))

	assert.Equal(t, 0, m.Heal(50), "fainting is one-way")
	assert.True(t, m.Fainted)
}

func TestForcedSwitchHuman(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, runner)
	b.Player().Active().CurrentHP = 1

	submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("tackle"))
	require.Equal(t, game.StatusWaitingForSwitch, b.Status)
	assert.True(t, b.Player().PendingSwitch)
	assert.Equal(t, 1, b.TurnNumber)
	assert.False(t, Ready(b))

	assert.True(t, game.IsIllegalState(e.ValidateAction(b, game.RolePlayer, game.MoveAction("tackle"))))
	assert.True(t, game.IsIllegalState(e.ValidateAction(b, game.RoleOpponent, game.MoveAction("tackle"))))
	assert.True(t, game.IsValidation(e.ValidateAction(b, game.RolePlayer, game.SwitchAction(0))))

	res := submit(t, e, b, game.SwitchAction(1), nil)
	assert.True(t, res.SwitchOnly)
	assert.Equal(t, 1, b.Player().ActiveIndex)
	assert.False(t, b.Player().PendingSwitch)
	assert.Equal(t, game.StatusWaitingForActions, b.Status)
	assert.Equal(t, 1, b.TurnNumber, "switch-only resolution keeps the turn number")
}

func TestFaintedAIAutoSwitches(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, runner, wall)
	b.Opponent().Active().CurrentHP = 1

	submit(t, e, b, game.MoveAction("tackle"), game.MoveAction("tackle"))

	o := b.Opponent()
	assert.True(t, o.Party[0].Fainted)
	assert.Equal(t, 1, o.ActiveIndex)
	assert.False(t, o.PendingSwitch)
	assert.Equal(t, 100, b.Player().Active().CurrentHP, "fainted attacker does not move")
	assert.Equal(t, game.StatusWaitingForActions, b.Status)
	assert.Equal(t, 2, b.TurnNumber)
}

func TestPriorityMoveGoesFirst(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, wall, runner)
	b.Opponent().Active().CurrentHP = 1

	// The slow wall's priority move lands before the runner's tackle.
	submit(t, e, b, game.MoveAction("quick"), game.MoveAction("tackle"))
	assert.Equal(t, 100, b.Player().Active().CurrentHP)
	assert.True(t, b.Opponent().Party[0].Fainted)
}

func TestProtect(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, runner, wall)
	m := b.Player().Active()

	submit(t, e, b, game.MoveAction("guard"), game.MoveAction("tackle"))
	assert.Equal(t, 100, m.CurrentHP)
	assert.False(t, m.IsBlocking, "block expires at turn close")
	assert.True(t, m.UsedBlockLastTurn)

	submit(t, e, b, game.MoveAction("guard"), game.MoveAction("tackle"))
	assert.Equal(t, 76, m.CurrentHP, "consecutive protect fails")
	assert.False(t, m.UsedBlockLastTurn)
}

func TestProtectIgnoresSelfStatMoves(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, runner, wall)

	submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("guard"))
	assert.Equal(t, 2, b.Player().Active().Stages.Attack)

	b.Opponent().Active().UsedBlockLastTurn = false
	submit(t, e, b, game.MoveAction("growl"), game.MoveAction("guard"))
	assert.Equal(t, 0, b.Opponent().Active().Stages.Attack, "opponent-directed change blocked")
}

func TestStatStagesClampThroughMoves(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, runner, wall)
	for i := 0; i < 3; i++ {
		submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("growl"))
	}
	// +2 per turn clamps at 2 and the opponent growl lands after.
	assert.Equal(t, 1, b.Player().Active().Stages.Attack)
}

func TestSwitchAfterUse(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, runner, wall)

	submit(t, e, b, game.MoveAction("pivot"), game.MoveAction("sharpen"))
	assert.Equal(t, 88, b.Opponent().Active().CurrentHP)
	assert.True(t, b.Player().PendingSwitch)
	require.Equal(t, game.StatusWaitingForSwitch, b.Status)

	submit(t, e, b, game.SwitchAction(2), nil)
	assert.Equal(t, 2, b.Player().ActiveIndex)
	assert.Equal(t, game.StatusWaitingForActions, b.Status)
}

func TestSwitchResetsStagesAndFlags(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, runner, wall)
	p := b.Player()
	out := p.Active()
	out.HasDrainEffect = true
	out.HasSubstitute = true
	out.SubstituteHP = 25
	p.Party[1].Stages.Defense = -2

	submit(t, e, b, game.SwitchAction(1), game.MoveAction("sharpen"))
	assert.Equal(t, 1, p.ActiveIndex)
	assert.False(t, out.HasDrainEffect)
	assert.False(t, out.HasSubstitute)
	assert.Equal(t, game.StatStages{}, p.Active().Stages)
	assert.Equal(t, 2, b.TurnNumber)
}

func TestSleepSkipsMoves(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, runner, wall)
	o := b.Opponent().Active()

	submit(t, e, b, game.MoveAction("lull"), game.MoveAction("tackle"))
	assert.Equal(t, game.ConditionSleep, o.Condition())
	assert.Equal(t, 1, o.SleepTurnsRemaining)
	assert.Equal(t, 100, b.Player().Active().CurrentHP)

	submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("tackle"))
	assert.Equal(t, game.ConditionNone, o.Condition())
	assert.Equal(t, 100, b.Player().Active().CurrentHP)

	submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("tackle"))
	assert.Equal(t, 76, b.Player().Active().CurrentHP)
}

func TestHealMove(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, wall)
	m := b.Player().Active()
	m.CurrentHP = 50

	submit(t, e, b, game.MoveAction("mend"), game.MoveAction("sharpen"))
	assert.Equal(t, 130, m.CurrentHP)
	submit(t, e, b, game.MoveAction("mend"), game.MoveAction("sharpen"))
	assert.Equal(t, 160, m.CurrentHP)
}

func TestTypeImmunityAbility(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, []string{"phantom", "wall", "runner"})

	submit(t, e, b, game.MoveAction("tackle"), game.MoveAction("sharpen"))
	assert.Equal(t, 100, b.Opponent().Active().CurrentHP)
}

func TestEntryAbility(t *testing.T) {
	e := newTestEngine(t)
	b := newPvE(t, e, tank, []string{"menacer", "wall", "runner"})
	assert.Equal(t, -1, b.Player().Active().Stages.Attack)
	assert.NotEmpty(t, b.LastLog)
}

func TestRematchRegeneratesAIParty(t *testing.T) {
	e := newTestEngine(t)
	id := "conn-player"
	b, err := e.NewBattle("b-2", game.ModeAI,
		SideSpec{Identity: &id, Roster: runner},
		SideSpec{Roster: wall},
		true, testRNG())
	require.NoError(t, err)
	o := b.Opponent()
	o.Party[1].Faint()
	o.Party[2].Faint()
	o.Active().CurrentHP = 1

	submit(t, e, b, game.MoveAction("tackle"), game.MoveAction("tackle"))

	assert.Equal(t, game.StatusWaitingForActions, b.Status)
	assert.Equal(t, game.WinnerNone, b.Winner)
	assert.Equal(t, 1, b.WinCount)
	assert.Equal(t, 0, o.ActiveIndex)
	require.Len(t, o.Party, game.PartySize)
	for i := range o.Party {
		assert.False(t, o.Party[i].Fainted)
		assert.Equal(t, o.Party[i].MaxHP, o.Party[i].CurrentHP)
		assert.Equal(t, i, o.Party[i].Slot)
	}
	assert.Equal(t, 100, b.Player().Active().CurrentHP)
}

func TestRematchDoesNotRegenerateHuman(t *testing.T) {
	e := newTestEngine(t)
	id := "conn-player"
	b, err := e.NewBattle("b-3", game.ModeAI,
		SideSpec{Identity: &id, Roster: wall},
		SideSpec{Roster: runner},
		true, testRNG())
	require.NoError(t, err)
	p := b.Player()
	p.Party[1].Faint()
	p.Party[2].Faint()
	p.Active().CurrentHP = 1

	submit(t, e, b, game.MoveAction("sharpen"), game.MoveAction("tackle"))
	assert.Equal(t, game.StatusFinished, b.Status)
	assert.Equal(t, game.WinnerOpponent, b.Winner)
	assert.Equal(t, 0, b.WinCount)
}
