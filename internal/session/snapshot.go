package session

import (
	"encoding/json"

	"github.com/llehouerou/playstate/internal/errmsg"
	"github.com/llehouerou/playstate/internal/history"
)

// restore loads the snapshot stored under key into c. A missing snapshot
// leaves c empty; an unreadable one is logged, reported and ignored.
func restore[T any](s *Session, key string, c *history.Cache[T, string]) {
	if s.store == nil {
		return
	}

	payload, err := s.store.LoadHistory(key)
	if err != nil {
		s.fallback(key, errmsg.OpHistoryLoad, err)
		return
	}
	if len(payload) == 0 {
		return
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		s.fallback(key, errmsg.OpHistoryDecode, err)
		return
	}
	c.Restore(items)
	s.logger.Debug("history restored", "key", key, "entries", c.Len())
}

// persist writes the current contents of c under key.
func persist[T any](s *Session, key string, c *history.Cache[T, string]) {
	if s.store == nil {
		return
	}

	payload, err := json.Marshal(c.All())
	if err != nil {
		s.logger.Error(errmsg.FormatWith(errmsg.OpHistoryEncode, key, err))
		s.report.Capture(err, "session", errmsg.OpHistoryEncode)
		return
	}
	s.store.SaveHistory(key, payload)
}

func (s *Session) fallback(key string, op errmsg.Op, err error) {
	s.logger.Warn(errmsg.FormatWith(op, key, err), "key", key)
	s.report.CaptureWithTags(err, map[string]string{
		"component": "session",
		"operation": string(op),
		"key":       key,
	})
	s.metrics.SnapshotFallback(key)
}
