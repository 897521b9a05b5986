package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/llehouerou/playstate/internal/errmsg"
	"github.com/llehouerou/playstate/internal/playlist"
	"github.com/llehouerou/playstate/internal/session"
)

func newPlayCmd(e *env) *cobra.Command {
	var modeName string
	var random bool

	cmd := &cobra.Command{
		Use:   "play <disstid> [index]",
		Short: "Load a playlist and play one of its tracks",
		Long: `Fetch the songs of a playlist, load them as the playing queue and play the
track at index (default 0). The track is recorded in the play history.

Examples:
  playstate play 7039014993
  playstate play 7039014993 4 --mode loop
  playstate play 7039014993 --random`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index := 0
			if len(args) == 2 {
				var err error
				if index, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("invalid index %q: %w", args[1], err)
				}
			}
			mode, err := playlist.ParseMode(modeName)
			if err != nil {
				return err
			}

			tracks, err := e.fetchSongs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			e.session.SetDisc(session.Disc{ID: args[0]})

			var view session.View
			if random {
				view = e.session.RandomPlay(tracks)
				if view.Current != nil {
					view = e.session.SelectTrack(*view.Current)
				}
			} else {
				if index < 0 || index >= len(tracks) {
					return fmt.Errorf("index %d out of range (playlist has %d tracks)", index, len(tracks))
				}
				e.session.SetMode(mode)
				e.session.SetPlaylist(tracks, index)
				view = e.session.SelectTrack(tracks[index])
			}
			return e.printView(cmd, view)
		},
	}
	cmd.Flags().StringVarP(&modeName, "mode", "m", "sequence", "play mode: sequence, loop or random")
	cmd.Flags().BoolVarP(&random, "random", "r", false, "shuffle and start from the first shuffled track")
	return cmd
}

func newFavoriteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <disstid> <index>",
		Short: "Toggle a playlist track in the favorites",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			tracks, err := e.fetchSongs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if index < 0 || index >= len(tracks) {
				return fmt.Errorf("index %d out of range (playlist has %d tracks)", index, len(tracks))
			}

			track := tracks[index]
			favorite := e.session.ToggleFavorite(track)

			out := cmd.OutOrStdout()
			if e.jsonOut {
				return writeJSON(out, map[string]any{"track": track, "favorite": favorite})
			}
			if favorite {
				fmt.Fprintf(out, "Added %q to favorites\n", track.Title)
			} else {
				fmt.Fprintf(out, "Removed %q from favorites\n", track.Title)
			}
			return nil
		},
	}
}

func newRecommendCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Show the home page recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slides, err := e.api.Recommend(cmd.Context())
			if err != nil {
				return e.fail(errmsg.OpFetchRecommend, "", err)
			}

			out := cmd.OutOrStdout()
			if e.jsonOut {
				return writeJSON(out, slides)
			}
			t := NewTable(out, "ID", "LINK", "PICTURE")
			for _, s := range slides {
				t.Row(strconv.Itoa(s.ID), s.LinkURL, s.PicURL)
			}
			t.Flush()
			return nil
		},
	}
}

func newDiscsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "discs",
		Short: "List recommended playlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			discs, err := e.api.DiscList(cmd.Context())
			if err != nil {
				return e.fail(errmsg.OpFetchDiscList, "", err)
			}

			out := cmd.OutOrStdout()
			if e.jsonOut {
				return writeJSON(out, discs)
			}
			t := NewTable(out, "DISSTID", "NAME", "CREATOR")
			for _, d := range discs {
				t.Row(d.DissID, d.DissName, d.Creator.Name)
			}
			t.Flush()
			return nil
		},
	}
}

func (e *env) fetchSongs(ctx context.Context, disstid string) ([]playlist.Track, error) {
	tracks, err := e.api.SongList(ctx, disstid)
	if err != nil {
		return nil, e.fail(errmsg.OpFetchSongList, disstid, err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("playlist %s has no playable tracks", disstid)
	}
	return tracks, nil
}

func (e *env) printView(cmd *cobra.Command, v session.View) error {
	out := cmd.OutOrStdout()
	if e.jsonOut {
		return writeJSON(out, v)
	}
	if v.Current != nil {
		fmt.Fprintf(out, "Now playing: %s - %s (%s mode)\n", v.Current.Artist, v.Current.Title, v.Mode)
	} else {
		fmt.Fprintf(out, "Nothing selected (%s mode)\n", v.Mode)
	}
	writeTracks(out, v.Queue, v.CurrentIndex)
	return nil
}
