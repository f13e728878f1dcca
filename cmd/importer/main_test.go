package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmdRequiresFlags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--dialect", "cctv"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "file")
}

func TestRootCmdRejectsUnknownDialect(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--dialect", "boats", "--file", "boats.csv"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "known: [cctv cpu network retail]")
}

func TestRootCmdFailsWithoutSettings(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--dialect", "retail", "--file", "retail.csv", "--settings", t.TempDir()})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "failed to load config")
}
