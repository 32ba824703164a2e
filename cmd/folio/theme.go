package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zaidlab/folio/internal/logger"
	"github.com/zaidlab/folio/internal/store"
	"github.com/zaidlab/folio/internal/theme"
)

func newThemeCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the saved colour scheme",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the active theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, pref, err := openThemeStore(root)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pref.Mode())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Save a theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{theme.Light.String(), theme.Dark.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := theme.ParseMode(args[0])
			if err != nil {
				return newCommandError("set theme", args[0], err, "Use light or dark.")
			}
			fs, _, err := openThemeStore(root)
			if err != nil {
				return err
			}
			return saveTheme(cmd, fs, mode)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Flip and save the theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, pref, err := openThemeStore(root)
			if err != nil {
				return err
			}
			return saveTheme(cmd, fs, pref.Mode().Opposite())
		},
	})

	return cmd
}

func openThemeStore(root *rootFlags) (*store.FileStore, *theme.Preference, error) {
	dir, err := stateDir(root.stateDir)
	if err != nil {
		return nil, nil, newCommandError("resolve state directory", "home directory lookup", err, "Set FOLIO_HOME or pass --state-dir.")
	}
	path := preferencesPath(dir)
	fs, err := store.NewFileStore(path)
	if err != nil {
		return nil, nil, newCommandError("open preferences", path, err, "Delete or fix the preference file.")
	}
	return fs, theme.NewPreference(fs, nil, logger.Discard()), nil
}

// saveTheme writes through the store directly so persistence failures reach the user.
func saveTheme(cmd *cobra.Command, fs *store.FileStore, mode theme.Mode) error {
	if err := fs.Set(theme.StorageKey, mode.String()); err != nil {
		return newCommandError("save theme", fs.Path(), err, "Check that the state directory is writable.")
	}
	fmt.Fprintln(cmd.OutOrStdout(), mode)
	return nil
}
