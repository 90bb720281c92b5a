package session

// Level is the target setup for one difficulty step.
type Level struct {
	// Targets is how many target cells are placed at session start.
	Targets int
	// HighestRow is the highest row a target may be placed in.
	HighestRow int
}

// Levels holds every defined level. Lookups past either end clamp.
var Levels = [21]Level{
	{Targets: 4, HighestRow: 9},
	{Targets: 7, HighestRow: 9},
	{Targets: 10, HighestRow: 9},
	{Targets: 13, HighestRow: 9},
	{Targets: 16, HighestRow: 9},
	{Targets: 19, HighestRow: 9},
	{Targets: 22, HighestRow: 9},
	{Targets: 25, HighestRow: 9},
	{Targets: 28, HighestRow: 9},
	{Targets: 31, HighestRow: 9},
	{Targets: 34, HighestRow: 9},
	{Targets: 37, HighestRow: 9},
	{Targets: 40, HighestRow: 9},
	{Targets: 43, HighestRow: 9},
	{Targets: 46, HighestRow: 9},
	{Targets: 49, HighestRow: 10},
	{Targets: 52, HighestRow: 10},
	{Targets: 55, HighestRow: 11},
	{Targets: 58, HighestRow: 11},
	{Targets: 61, HighestRow: 12},
	{Targets: 64, HighestRow: 12},
}

// MaxLevel is the highest level index with its own table entry.
const MaxLevel = len(Levels) - 1

// LevelFor returns the table entry for level, clamped to [0, MaxLevel].
func LevelFor(level int) Level {
	return Levels[ClampLevel(level)]
}

// ClampLevel folds level into the table's index range.
func ClampLevel(level int) int {
	return min(max(level, 0), MaxLevel)
}
