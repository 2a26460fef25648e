package planner

// muscleGroupSplit returns the target muscle groups of each day for the given number of training days.
//
// One to four days have hand-authored splits. Five or more days cycle through a five day base pattern, so day six
// repeats the targets of day one.
func muscleGroupSplit(days int) [][]MuscleGroup {
	switch days {
	case 1:
		return [][]MuscleGroup{
			{MuscleChest, MuscleBack, MuscleLegs, MuscleCardio},
		}
	case 2: //nolint:mnd // two day split.
		return [][]MuscleGroup{
			{MuscleChest, MuscleBack, MuscleShoulders},
			{MuscleLegs, MuscleArms, MuscleCore, MuscleCardio},
		}
	case 3: //nolint:mnd // three day split.
		return [][]MuscleGroup{
			{MuscleChest, MuscleBack},
			{MuscleLegs, MuscleShoulders},
			{MuscleArms, MuscleCore, MuscleCardio},
		}
	case 4: //nolint:mnd // four day split.
		return [][]MuscleGroup{
			{MuscleChest, MuscleShoulders},
			{MuscleBack, MuscleArms},
			{MuscleLegs, MuscleCore},
			{MuscleCardio},
		}
	}

	base := [][]MuscleGroup{
		{MuscleChest},
		{MuscleBack},
		{MuscleLegs},
		{MuscleShoulders, MuscleArms},
		{MuscleCore, MuscleCardio},
	}
	split := make([][]MuscleGroup, 0, max(days, 0))
	for i := range max(days, 0) {
		split = append(split, base[i%len(base)])
	}
	return split
}
