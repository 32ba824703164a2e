package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func executeCommand(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}
