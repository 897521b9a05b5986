package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/playstate/internal/errmsg"
	"github.com/llehouerou/playstate/internal/uid"
)

func newUIDCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "uid",
		Short: "Print the session tag sent with API requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := uid.Get()
			if e.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]int64{"uid": id})
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newSnapshotsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots",
		Short: "List stored history snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshots, err := e.store.Snapshots()
			if err != nil {
				return e.fail(errmsg.OpSnapshotList, "", err)
			}

			out := cmd.OutOrStdout()
			if e.jsonOut {
				return writeJSON(out, snapshots)
			}
			if len(snapshots) == 0 {
				fmt.Fprintln(out, "No snapshots stored")
				return nil
			}
			t := NewTable(out, "KEY", "SIZE", "UPDATED")
			for _, s := range snapshots {
				t.Row(s.Key, humanize.Bytes(uint64(s.Size)), humanize.Time(s.UpdatedAt)) //nolint:gosec // length is never negative
			}
			t.Flush()
			return nil
		},
	}
}
