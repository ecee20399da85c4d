package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordStageDuration(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordStageDuration("Elevation", 12*time.Millisecond)
	})
}

func TestRecordGenerationResult(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordGenerationResult("success")
	})
}

func TestSetGridSize(t *testing.T) {
	assert.NotPanics(t, func() {
		SetGridSize("base", 2048*1024)
	})
}
