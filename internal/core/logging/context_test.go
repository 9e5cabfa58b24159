package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetFile(ctx))
	assert.Empty(t, GetCommand(ctx))

	ctx = WithFile(ctx, "/src/main.go")
	ctx = WithCommand(ctx, "update")

	assert.Equal(t, "/src/main.go", GetFile(ctx))
	assert.Equal(t, "update", GetCommand(ctx))
}
