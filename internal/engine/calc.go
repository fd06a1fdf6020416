package engine

import (
	"math"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

// typeChart[attacking][defending]; missing entries are neutral.
var typeChart = map[game.Type]map[game.Type]float64{
	game.TypeNormal: {},
	game.TypeFire:   {game.TypeWater: 0.5, game.TypeGrass: 2.0},
	game.TypeWater:  {game.TypeFire: 2.0, game.TypeGrass: 0.5},
	game.TypeGrass:  {game.TypeFire: 0.5, game.TypeWater: 2.0},
	game.TypeLight:  {game.TypeDark: 2.0},
	game.TypeDark:   {game.TypeLight: 2.0},
}

const (
	stabMultiplier = 1.5
	// SubstituteThreshold is the move power at which a substitute breaks
	// instead of absorbing the hit.
	SubstituteThreshold = 70
	// SleepTurns is how long an inflicted sleep lasts.
	SleepTurns = 2
)

// TypeMultiplier multiplies the chart entry for every defender type.
func TypeMultiplier(moveType game.Type, defenderTypes []game.Type) float64 {
	mult := 1.0
	row := typeChart[moveType]
	for _, t := range defenderTypes {
		if v, ok := row[t]; ok {
			mult *= v
		}
	}
	return mult
}

// StabBonus is the same-type attack bonus.
func StabBonus(moveType game.Type, attackerTypes []game.Type) float64 {
	for _, t := range attackerTypes {
		if t == moveType {
			return stabMultiplier
		}
	}
	return 1.0
}

// Damage applies the battle formula. Both stats must already be scaled by
// their stage multipliers. The result is never below 1.
func Damage(attackStat, defenseStat float64, power int, typeMult, stab float64) int {
	raw := attackStat * float64(power) * typeMult * stab / (1.5 * (defenseStat + 120))
	d := int(math.Floor(raw))
	if d < 1 {
		return 1
	}
	return d
}

// tickAmount is the per-tick HP for poison and drain.
func tickAmount(maxHP int) int {
	if v := maxHP / 8; v > 1 {
		return v
	}
	return 1
}
