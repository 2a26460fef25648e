package planner

import "math"

// Fitness weights.
const (
	equipmentMismatchPenalty = -50.0
	recoveryViolationPenalty = -15.0
	cardioPresentReward      = 30.0
	cardioAbsentPenalty      = -100.0
	missingSessionPenalty    = -10.0
	sessionFloorReward       = 20.0
	calorieDeviationPenalty  = -100.0
	calorieTightReward       = 50.0

	calorieDeviationLimit = 0.2
	calorieTightLimit     = 0.1
)

// Breakdown lists the contribution of every fitness term.
type Breakdown struct {
	Equipment    float64
	Recovery     float64
	Cardio       float64
	SessionFloor float64
	Calories     float64
	Total        float64
}

// Fitness scores the plan for the profile. Higher is better and the score may be negative.
func Fitness(plan *Plan, profile UserProfile) float64 {
	return Evaluate(plan, profile).Total
}

// Evaluate scores the plan for the profile term by term.
func Evaluate(plan *Plan, profile UserProfile) Breakdown {
	b := Breakdown{
		Equipment:    equipmentScore(plan, profile),
		Recovery:     recoveryScore(plan),
		Cardio:       cardioScore(plan),
		SessionFloor: sessionFloorScore(plan),
		Calories:     calorieScore(plan, profile),
		Total:        0,
	}
	b.Total = b.Equipment + b.Recovery + b.Cardio + b.SessionFloor + b.Calories
	return b
}

// equipmentScore penalises every session that needs equipment the user does not own. A session missing several
// items is penalised once per missing item.
func equipmentScore(plan *Plan, profile UserProfile) float64 {
	var score float64
	for _, d := range plan.Days {
		for _, s := range d.Sessions() {
			for _, item := range s.Exercise().Equipment {
				if !profile.HasEquipment(item) {
					score += equipmentMismatchPenalty
				}
			}
		}
	}
	return score
}

// recoveryScore penalises every pair of consecutive days that train the same non-cardio muscle group.
func recoveryScore(plan *Plan) float64 {
	var score float64
	for _, days := range plan.MuscleOccurrences() {
		for i := 1; i < len(days); i++ {
			if days[i]-days[i-1] == 1 {
				score += recoveryViolationPenalty
			}
		}
	}
	return score
}

func cardioScore(plan *Plan) float64 {
	if plan.HasCardio() {
		return cardioPresentReward
	}
	return cardioAbsentPenalty
}

func sessionFloorScore(plan *Plan) float64 {
	var score float64
	for _, d := range plan.Days {
		if n := d.Len(); n < MinSessionsPerDay {
			score += missingSessionPenalty * float64(MinSessionsPerDay-n)
		} else {
			score += sessionFloorReward
		}
	}
	return score
}

// calorieScore compares the weekly total with the optional target. Deviations between 10% and 20% score zero.
func calorieScore(plan *Plan, profile UserProfile) float64 {
	if !profile.hasCalorieTarget() {
		return 0
	}
	target := *profile.TargetCalories
	deviation := math.Abs(plan.TotalCalories()-target) / target
	switch {
	case deviation > calorieDeviationLimit:
		return calorieDeviationPenalty * deviation
	case deviation < calorieTightLimit:
		return calorieTightReward
	default:
		return 0
	}
}
