package stagesession

import "fmt"

// Mode selects which questions a session walks and whether it moves the
// subject's resumption pointer.
type Mode string

const (
	// ModeNormal walks the whole subject and resumes where it was left.
	ModeNormal Mode = "normal"
	// ModeWrong reviews previously missed questions; progress is never saved.
	ModeWrong Mode = "wrong"
)

const DefaultStageSize = 10

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeNormal:
		return ModeNormal, nil
	case ModeWrong:
		return ModeWrong, nil
	default:
		return "", fmt.Errorf("unknown session mode %q", s)
	}
}

// Config holds the per-session settings.
type Config struct {
	StageSize int
	Mode      Mode
}

func DefaultConfig() Config {
	return Config{StageSize: DefaultStageSize, Mode: ModeNormal}
}

func (c Config) normalized() Config {
	if c.StageSize < 1 {
		c.StageSize = DefaultStageSize
	}
	if c.Mode == "" {
		c.Mode = ModeNormal
	}
	return c
}

// Stage arithmetic. Indexes are zero-based, stages one-based.

func CurrentStage(index, stageSize int) int {
	return index/stageSize + 1
}

func StageStart(index, stageSize int) int {
	return (CurrentStage(index, stageSize) - 1) * stageSize
}

func StageEnd(index, stageSize, total int) int {
	return min(StageStart(index, stageSize)+stageSize, total)
}

func PositionInStage(index, stageSize int) int {
	return index - StageStart(index, stageSize) + 1
}

func TotalStages(total, stageSize int) int {
	return (total + stageSize - 1) / stageSize
}

// IsStageBoundary reports whether index is the last slot of its stage.
func IsStageBoundary(index, stageSize int) bool {
	return (index+1)%stageSize == 0
}
