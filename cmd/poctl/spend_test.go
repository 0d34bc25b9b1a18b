package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	got, err := parseDay("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDay("2026-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), *got)

	_, err = parseDay("31/03/2026")
	assert.Error(t, err)
}

func TestMigrateRequiresCommand(t *testing.T) {
	assert.Error(t, migrateCmd.Args(migrateCmd, nil))
	assert.NoError(t, migrateCmd.Args(migrateCmd, []string{"status"}))
}
