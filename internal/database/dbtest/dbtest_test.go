package dbtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSearchPath(t *testing.T) {
	got, err := WithSearchPath("postgres://u@h:5432/d?sslmode=disable", "s1")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u@h:5432/d?search_path=s1&sslmode=disable", got)

	got, err = WithSearchPath("host=h dbname=d", "s2")
	require.NoError(t, err)
	assert.Equal(t, "host=h dbname=d search_path=s2", got)
}
