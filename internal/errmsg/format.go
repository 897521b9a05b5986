// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// History persistence
	OpHistoryLoad   Op = "load history"
	OpHistorySave   Op = "save history"
	OpHistoryDecode Op = "decode history snapshot"
	OpHistoryEncode Op = "encode history snapshot"
	OpSnapshotList  Op = "list history snapshots"

	// Storage lifecycle
	OpStorageOpen  Op = "open storage"
	OpStorageClose Op = "close storage"

	// Remote data
	OpFetchRecommend Op = "fetch recommendations"
	OpFetchDiscList  Op = "fetch disc list"
	OpFetchSongList  Op = "fetch song list"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
