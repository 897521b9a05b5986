package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/playstate/internal/db"
)

// Snapshot describes a stored history snapshot.
type Snapshot struct {
	Key       string    `json:"key"`
	Size      int       `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func getSnapshot(db *sql.DB, key string) ([]byte, error) {
	var payload []byte
	err := db.QueryRow(`SELECT payload FROM history_snapshots WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // no snapshot yet is valid on first run
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func saveSnapshot(db *sql.DB, key string, payload []byte, now time.Time) error {
	return dbutil.WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO history_snapshots (key, payload, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				payload = excluded.payload,
				updated_at = excluded.updated_at
		`, key, payload, now.UnixMilli())
		return err
	})
}

func listSnapshots(db *sql.DB) ([]Snapshot, error) {
	rows, err := db.Query(`
		SELECT key, length(payload), updated_at
		FROM history_snapshots
		ORDER BY updated_at DESC, key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		var updatedAt sql.NullInt64
		if err := rows.Scan(&s.Key, &s.Size, &updatedAt); err != nil {
			return nil, err
		}
		s.UpdatedAt = dbutil.UnixMilli(updatedAt)
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
