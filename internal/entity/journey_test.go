package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageIndex(t *testing.T) {
	assert.Equal(t, 0, StageIndex(StageArrival))
	assert.Equal(t, 1, StageIndex(StageCheckIn))
	assert.Equal(t, 4, StageIndex(StageDeparture))
	assert.Equal(t, -1, StageIndex(JourneyStage("lobby")))
}

func TestNextStage(t *testing.T) {
	assert.Equal(t, StageCheckIn, NextStage(StageArrival))
	assert.Equal(t, StageNavigation, NextStage(StageCheckIn))
	assert.Equal(t, StageVisit, NextStage(StageNavigation))
	assert.Equal(t, StageDeparture, NextStage(StageVisit))

	// Final and unknown stages do not advance.
	assert.Equal(t, StageDeparture, NextStage(StageDeparture))
	assert.Equal(t, JourneyStage("lobby"), NextStage(JourneyStage("lobby")))
}

func TestPrevStage(t *testing.T) {
	assert.Equal(t, StageCheckIn, PrevStage(StageNavigation))
	assert.Equal(t, StageArrival, PrevStage(StageCheckIn))

	assert.Equal(t, StageArrival, PrevStage(StageArrival))
	assert.Equal(t, JourneyStage("lobby"), PrevStage(JourneyStage("lobby")))
}

func TestStageOrderCoversEveryStageOnce(t *testing.T) {
	seen := make(map[JourneyStage]int)
	for _, stage := range JourneyStageOrder {
		seen[stage]++
	}

	assert.Len(t, seen, 5)
	for stage, count := range seen {
		assert.Equal(t, 1, count, "stage %s appears more than once", stage)
	}
}
