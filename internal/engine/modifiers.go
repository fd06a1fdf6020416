package engine

import "github.com/shotam27/NoGambleMonsterBattle/internal/game"

// stageTable is a fixed lookup, indexed by stage+2.
var stageTable = [...]float64{0.5, 0.75, 1.0, 1.5, 2.0}

// StageMultiplier maps a stage in [-2,2] to its multiplier. Out-of-range
// stages are clamped first.
func StageMultiplier(stage int) float64 {
	if stage < game.MinStage {
		stage = game.MinStage
	}
	if stage > game.MaxStage {
		stage = game.MaxStage
	}
	return stageTable[stage-game.MinStage]
}

// EffectiveSpeed scales base speed by the speed stage and halves it when the
// member is paralysed.
func EffectiveSpeed(m *game.PartyMember, def *game.CreatureDefinition) int {
	spd := int(float64(def.Stats.Speed) * StageMultiplier(m.Stages.Speed))
	if m.Condition() == game.ConditionParalysis {
		spd /= 2
	}
	return spd
}

// offenseStats returns the stage-scaled attacking and defending stats for a
// move of the given category.
func offenseStats(cat game.Category, atk *game.PartyMember, atkDef *game.CreatureDefinition, tgt *game.PartyMember, tgtDef *game.CreatureDefinition) (float64, float64) {
	if cat == game.CategoryMagical {
		return float64(atkDef.Stats.MagicAttack) * StageMultiplier(atk.Stages.MagicAttack),
			float64(tgtDef.Stats.MagicDefense) * StageMultiplier(tgt.Stages.MagicDefense)
	}
	return float64(atkDef.Stats.Attack) * StageMultiplier(atk.Stages.Attack),
		float64(tgtDef.Stats.Defense) * StageMultiplier(tgt.Stages.Defense)
}
