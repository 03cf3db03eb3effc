package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"migrate", "grant-admin", "revoke-admin", "backfill-codes"}, names)
}

func TestRoleCommand_RequiresEmail(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"grant-admin"})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestMigrateCommand_RejectsArguments(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"migrate", "extra"})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
