package domain

import "fmt"

// PositionLevel is a rung of the management hierarchy. Levels are ordered by
// ascending authority: staff < direct_supervisor < branch_deputy < general_manager.
type PositionLevel string

const (
	LevelStaff            PositionLevel = "staff"
	LevelDirectSupervisor PositionLevel = "direct_supervisor"
	LevelBranchDeputy     PositionLevel = "branch_deputy"
	LevelGeneralManager   PositionLevel = "general_manager"
)

// PositionLevels lists every level from lowest to highest authority.
var PositionLevels = []PositionLevel{
	LevelStaff,
	LevelDirectSupervisor,
	LevelBranchDeputy,
	LevelGeneralManager,
}

// Rank returns the zero-based position of the level in the hierarchy,
// or -1 for an unknown level.
func (l PositionLevel) Rank() int {
	for i, lvl := range PositionLevels {
		if lvl == l {
			return i
		}
	}
	return -1
}

func (l PositionLevel) Valid() bool {
	return l.Rank() >= 0
}

// Next returns the level one rung above l. The general manager is the
// ceiling and maps to itself.
func (l PositionLevel) Next() PositionLevel {
	switch l {
	case LevelStaff:
		return LevelDirectSupervisor
	case LevelDirectSupervisor:
		return LevelBranchDeputy
	default:
		return LevelGeneralManager
	}
}

// Label returns a human-readable name for display.
func (l PositionLevel) Label() string {
	switch l {
	case LevelStaff:
		return "Staff"
	case LevelDirectSupervisor:
		return "Direct Supervisor"
	case LevelBranchDeputy:
		return "Branch Deputy"
	case LevelGeneralManager:
		return "General Manager"
	default:
		return string(l)
	}
}

// ParsePositionLevel converts a raw string into a PositionLevel.
func ParsePositionLevel(s string) (PositionLevel, error) {
	l := PositionLevel(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown position level %q", s)
	}
	return l, nil
}
