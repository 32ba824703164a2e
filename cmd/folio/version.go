package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/zaidlab/folio/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildInfo describes the binary and the content schema it embeds.
type buildInfo struct {
	Version        string
	Commit         string
	Date           string
	GoVersion      string
	ContentVersion string
}

func currentBuild() buildInfo {
	info := buildInfo{
		Version:        version,
		Commit:         commit,
		Date:           date,
		GoVersion:      runtime.Version(),
		ContentVersion: config.Default().Version,
	}
	// go install builds carry no ldflags; fall back to the module version.
	if info.Version == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}
	return info
}

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentBuild()
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, info.Version)
				return nil
			}
			fmt.Fprintf(out, "folio %s (%s)\n", info.Version, info.GoVersion)
			fmt.Fprintf(out, "  commit:  %s\n  built:   %s\n  content: v%s\n", info.Commit, info.Date, info.ContentVersion)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")

	return cmd
}
