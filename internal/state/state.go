// Package state persists history snapshots in a local sqlite database.
package state

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/playstate/internal/debounce"
	"github.com/llehouerou/playstate/internal/errmsg"
	"github.com/llehouerou/playstate/internal/errreport"
	applog "github.com/llehouerou/playstate/internal/logger"
	"github.com/llehouerou/playstate/internal/metrics"
)

const (
	appName    = "playstate"
	dbFileName = "playstate.db"
)

// Options configures a Manager.
type Options struct {
	Path      string        // database file, empty means the XDG data dir
	SaveDelay time.Duration // coalescing window for SaveHistory
	Logger    *slog.Logger
	Reporter  *errreport.Reporter
	Metrics   *metrics.Metrics
}

// Manager stores history snapshots. Saves are coalesced per key and written
// on a timer goroutine; Close flushes whatever is still pending.
type Manager struct {
	db      *sql.DB
	delay   time.Duration
	logger  *slog.Logger
	report  *errreport.Reporter
	metrics *metrics.Metrics
	now     func() time.Time

	mu     sync.Mutex
	savers map[string]*debounce.Debouncer[[]byte]

	writeMu sync.Mutex
	closed  bool
}

func Open(opts Options) (*Manager, error) {
	dbPath := opts.Path
	if dbPath == "" {
		var err error
		dbPath, err = getDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return newManager(db, opts), nil
}

func newManager(db *sql.DB, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		db:      db,
		delay:   opts.SaveDelay,
		logger:  applog.WithComponent(logger, "state"),
		report:  opts.Reporter,
		metrics: opts.Metrics,
		now:     time.Now,
		savers:  make(map[string]*debounce.Debouncer[[]byte]),
	}
}

// LoadHistory returns the stored snapshot for key, or nil if none exists.
func (m *Manager) LoadHistory(key string) ([]byte, error) {
	return getSnapshot(m.db, key)
}

// SaveHistory schedules payload to be written under key. Failures are logged
// and reported, never returned.
func (m *Manager) SaveHistory(key string, payload []byte) {
	m.saver(key).Call(payload)
}

// Snapshots lists the stored keys with their last update time.
func (m *Manager) Snapshots() ([]Snapshot, error) {
	return listSnapshots(m.db)
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// Close writes pending snapshots and closes the database.
func (m *Manager) Close() error {
	m.mu.Lock()
	savers := make([]*debounce.Debouncer[[]byte], 0, len(m.savers))
	for _, s := range m.savers {
		savers = append(savers, s)
	}
	m.mu.Unlock()

	// Flush pending snapshots
	for _, s := range savers {
		s.Flush()
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	return m.db.Close()
}

func (m *Manager) saver(key string) *debounce.Debouncer[[]byte] {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.savers[key]
	if !ok {
		s = debounce.New(m.delay, func(payload []byte) {
			m.write(key, payload)
		})
		m.savers[key] = s
	}
	return s
}

func (m *Manager) write(key string, payload []byte) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if m.closed {
		m.logger.Warn("dropping snapshot after close", "key", key)
		return
	}

	err := saveSnapshot(m.db, key, payload, m.now())
	m.metrics.HistoryWrite(key, err)
	if err != nil {
		m.logger.Error(errmsg.FormatWith(errmsg.OpHistorySave, key, err))
		m.report.CaptureWithTags(err, map[string]string{
			"component": "state",
			"operation": string(errmsg.OpHistorySave),
			"key":       key,
		})
		return
	}
	m.logger.Debug("snapshot saved", "key", key, "bytes", len(payload))
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
