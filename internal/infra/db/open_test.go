package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(t.Context(), "sqlite", "file::memory:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported database driver "sqlite"`)
}
