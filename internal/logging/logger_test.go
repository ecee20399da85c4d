package logging

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWithRunAttachesRunID(t *testing.T) {
	InitLogger()

	id := uuid.New()
	ctx := WithRun(context.Background(), id)

	assert.Equal(t, id.String(), RunID(ctx))
	assert.NotNil(t, FromContext(ctx))
}

func TestRunIDEmptyWithoutWithRun(t *testing.T) {
	assert.Empty(t, RunID(context.Background()))
}

func TestFromContextFallsBackToGlobalLogger(t *testing.T) {
	InitLogger()
	assert.NotNil(t, FromContext(context.Background()))
}
