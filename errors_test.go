package loom_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomstack/loom"
)

func TestModelNotFoundError(t *testing.T) {
	err := loom.NewModelNotFoundError("Ghost")
	assert.True(t, loom.IsModelNotFound(err))
	assert.ErrorIs(t, err, loom.ErrModelNotFound)
	assert.Contains(t, err.Error(), "Ghost")

	wrapped := fmt.Errorf("lookup: %w", err)
	assert.True(t, loom.IsModelNotFound(wrapped))
	assert.False(t, loom.IsModelNotFound(errors.New("other")))
}

func TestDuplicateModelError(t *testing.T) {
	err := loom.NewDuplicateModelError("User")
	assert.True(t, loom.IsDuplicateModel(err))
	assert.ErrorIs(t, err, loom.ErrDuplicateModel)
	assert.Contains(t, err.Error(), "User")
	assert.False(t, loom.IsDuplicateModel(loom.NewModelNotFoundError("User")))
}

func TestFieldByName(t *testing.T) {
	m := &loom.Model{Name: "User"}
	_, ok := m.FieldByName("id")
	require.False(t, ok)
}
