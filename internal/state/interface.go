package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	LoadHistory(key string) ([]byte, error)
	SaveHistory(key string, payload []byte)
	Snapshots() ([]Snapshot, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
