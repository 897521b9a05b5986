package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/playstate/internal/session"
)

func newHistoryCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "history [search|play|favorite]",
		Short: "Show the persisted histories",
		Long: `Show recent searches, recently played tracks and favorites, most recent
first. Without an argument all three are shown.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{session.KeySearch, session.KeyPlay, session.KeyFavorite},
		RunE: func(cmd *cobra.Command, args []string) error {
			which := ""
			if len(args) == 1 {
				which = args[0]
			}
			return e.printHistory(cmd, which)
		},
	}
}

func (e *env) printHistory(cmd *cobra.Command, which string) error {
	out := cmd.OutOrStdout()
	show := func(key string) bool { return which == "" || which == key }

	if e.jsonOut {
		result := map[string]any{}
		if show(session.KeySearch) {
			result[session.KeySearch] = e.session.SearchHistory()
		}
		if show(session.KeyPlay) {
			result[session.KeyPlay] = e.session.PlayHistory()
		}
		if show(session.KeyFavorite) {
			result[session.KeyFavorite] = e.session.Favorites()
		}
		return writeJSON(out, result)
	}

	if show(session.KeySearch) {
		fmt.Fprintln(out, "Recent searches:")
		t := NewTable(out)
		for i, term := range e.session.SearchHistory() {
			t.Row(fmt.Sprintf("  %d", i+1), term)
		}
		t.Flush()
	}
	if show(session.KeyPlay) {
		fmt.Fprintln(out, "Recently played:")
		writeTracks(out, e.session.PlayHistory(), -1)
	}
	if show(session.KeyFavorite) {
		fmt.Fprintln(out, "Favorites:")
		writeTracks(out, e.session.Favorites(), -1)
	}
	return nil
}

func newSearchCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Manage the search history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.printHistory(cmd, session.KeySearch)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "record <term>",
			Short: "Record a search term",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				e.session.RecordSearch(args[0])
				return e.printHistory(cmd, session.KeySearch)
			},
		},
		&cobra.Command{
			Use:   "delete <term>",
			Short: "Remove a search term",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				e.session.DeleteSearch(args[0])
				return e.printHistory(cmd, session.KeySearch)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Clear the search history",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				e.session.ClearSearchHistory()
				return e.printHistory(cmd, session.KeySearch)
			},
		},
	)
	return cmd
}
