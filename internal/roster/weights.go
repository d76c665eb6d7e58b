package roster

import "github.com/dugoutlabs/gamesim/internal/prob"

// Per-skill weight tables. Each table names the attribute subset that
// feeds one composite; normalization happens inside prob.Composite so
// weights are relative shares, not percentages.

// Baseball batting. Contact, power and discipline draw on disjoint
// subsets so an elite slugger is not automatically a contact hitter.
var (
	BattingContactWeights = prob.WeightTable{
		AttrBattingContact: 3,
		AttrReactions:      2,
		AttrTechnique:      2,
		AttrConcentration:  1,
	}
	BattingPowerWeights = prob.WeightTable{
		AttrBattingPower: 3,
		AttrStrength:     2,
		AttrGripStrength: 1,
	}
	BattingDisciplineWeights = prob.WeightTable{
		AttrVision:       2,
		AttrComposure:    2,
		AttrAnticipation: 1,
		AttrDecisions:    1,
	}
)

// Baseball pitching.
var (
	PitchingVelocityWeights = prob.WeightTable{
		AttrThrowPower: 3,
		AttrStrength:   1,
		AttrWorkRate:   1,
	}
	PitchingControlWeights = prob.WeightTable{
		AttrThrowAccuracy: 3,
		AttrComposure:     2,
		AttrConcentration: 1,
	}
	PitchingMovementWeights = prob.WeightTable{
		AttrFinesse:   3,
		AttrTechnique: 2,
		AttrAgility:   1,
	}
)

// Baseball fielding, keyed by position group. Infielders live on
// reactions and hands, outfielders on range, catchers on the arm.
var (
	InfieldFieldingWeights = prob.WeightTable{
		AttrReactions:     3,
		AttrCatching:      2,
		AttrAgility:       2,
		AttrThrowAccuracy: 1,
	}
	OutfieldFieldingWeights = prob.WeightTable{
		AttrSpeed:        2,
		AttrCatching:     2,
		AttrAnticipation: 2,
		AttrThrowPower:   1,
	}
	CatcherFieldingWeights = prob.WeightTable{
		AttrCatching:      3,
		AttrThrowAccuracy: 2,
		AttrThrowPower:    2,
		AttrReactions:     1,
	}
	BaserunningWeights = prob.WeightTable{
		AttrSpeed:        3,
		AttrAcceleration: 2,
		AttrAnticipation: 1,
		AttrDecisions:    1,
	}
)

// Basketball shooting, one table per shot family plus free throws.
var (
	ThreePointWeights = prob.WeightTable{
		AttrTechnique:     3,
		AttrComposure:     2,
		AttrConcentration: 2,
	}
	MidrangeWeights = prob.WeightTable{
		AttrTechnique: 3,
		AttrFinesse:   2,
		AttrComposure: 1,
	}
	LayupWeights = prob.WeightTable{
		AttrFinesse: 3,
		AttrAgility: 2,
		AttrSpeed:   1,
		AttrBravery: 1,
	}
	DunkWeights = prob.WeightTable{
		AttrJumping:  3,
		AttrStrength: 2,
		AttrHeight:   2,
		AttrBravery:  1,
	}
	FreeThrowWeights = prob.WeightTable{
		AttrTechnique:     3,
		AttrComposure:     3,
		AttrConcentration: 2,
	}
)

// Basketball everything-else.
var (
	ReboundWeights = prob.WeightTable{
		AttrHeight:       3,
		AttrJumping:      3,
		AttrStrength:     2,
		AttrAnticipation: 2,
	}
	PerimeterDefenseWeights = prob.WeightTable{
		AttrAgility:      3,
		AttrReactions:    2,
		AttrAnticipation: 2,
		AttrSpeed:        1,
	}
	InteriorDefenseWeights = prob.WeightTable{
		AttrHeight:   3,
		AttrStrength: 2,
		AttrJumping:  2,
		AttrBravery:  1,
	}
	StealWeights = prob.WeightTable{
		AttrAnticipation: 3,
		AttrReactions:    2,
		AttrAgility:      1,
	}
	BallHandlingWeights = prob.WeightTable{
		AttrVision:    2,
		AttrDecisions: 2,
		AttrTechnique: 2,
		AttrComposure: 1,
	}
)
