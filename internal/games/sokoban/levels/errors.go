package levels

import "errors"

var (
	ErrNoLevels      = errors.New("no levels found")
	ErrLevelNotFound = errors.New("level not found")
	ErrNoPlayer      = errors.New("level has no player")
	ErrNoBlocks      = errors.New("level has no blocks")
	ErrTooFewGoals   = errors.New("level has fewer goals than blocks")
	ErrAlreadySolved = errors.New("level starts solved")
	ErrDuplicatePack = errors.New("duplicate pack name")
)
