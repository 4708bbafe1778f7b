package entity

import "time"

type JourneyStage string

const (
	StageArrival    JourneyStage = "arrival"
	StageCheckIn    JourneyStage = "check_in"
	StageNavigation JourneyStage = "navigation"
	StageVisit      JourneyStage = "visit"
	StageDeparture  JourneyStage = "departure"
)

// JourneyStageOrder is the fixed forward path through a hospital visit.
// Stages advance one at a time; skipping is never allowed.
var JourneyStageOrder = []JourneyStage{
	StageArrival,
	StageCheckIn,
	StageNavigation,
	StageVisit,
	StageDeparture,
}

type Journey struct {
	Stage       JourneyStage           `json:"stage"`
	Retries     int                    `json:"retries"`
	StageData   map[string]interface{} `json:"stage_data,omitempty"`
	StartedAt   time.Time              `json:"started_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
}

// StageIndex returns the position of s in the journey order, or -1 when
// s is not a known stage.
func StageIndex(s JourneyStage) int {
	for i, stage := range JourneyStageOrder {
		if stage == s {
			return i
		}
	}
	return -1
}

// NextStage returns the stage after s, or s itself when s is the final
// stage or unknown.
func NextStage(s JourneyStage) JourneyStage {
	idx := StageIndex(s)
	if idx < 0 || idx == len(JourneyStageOrder)-1 {
		return s
	}
	return JourneyStageOrder[idx+1]
}

// PrevStage returns the stage before s, or s itself when s is the first
// stage or unknown.
func PrevStage(s JourneyStage) JourneyStage {
	idx := StageIndex(s)
	if idx <= 0 {
		return s
	}
	return JourneyStageOrder[idx-1]
}
