package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetMigrateCmd_Exists verifies getMigrateCmd returns
// a valid command.
func TestGetMigrateCmd_Exists(t *testing.T) {
	cmd := getMigrateCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "migrate", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

// TestGetMigrateCmd_Descriptions verifies help texts.
func TestGetMigrateCmd_Descriptions(t *testing.T) {
	cmd := getMigrateCmd()

	assert.Contains(t, cmd.Short, "schema")
	assert.Contains(t, cmd.Long, "non-destructive")
	assert.Nil(t, cmd.Flags().Lookup("force"),
		"migrate never drops tables")
}
