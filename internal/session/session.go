// Package session holds the playback session: the playing queue, its mode,
// the display flags and the three persisted history caches.
//
// A Session is owned by one goroutine. Callers serialize access.
package session

import (
	"log/slog"
	"strings"

	"github.com/llehouerou/playstate/internal/errreport"
	"github.com/llehouerou/playstate/internal/history"
	applog "github.com/llehouerou/playstate/internal/logger"
	"github.com/llehouerou/playstate/internal/metrics"
	"github.com/llehouerou/playstate/internal/playlist"
)

// Storage keys of the persisted history caches.
const (
	KeySearch   = "search"
	KeyPlay     = "play"
	KeyFavorite = "favorite"
)

// Default capacities.
const (
	DefaultSearchCapacity   = 15
	DefaultPlayCapacity     = 200
	DefaultFavoriteCapacity = 200
)

// Storage persists serialized history snapshots. A missing key loads as nil.
// SaveHistory is fire-and-forget.
type Storage interface {
	LoadHistory(key string) ([]byte, error)
	SaveHistory(key string, payload []byte)
}

// Capacities bounds each history cache. Zero values take the defaults.
type Capacities struct {
	Search   int
	Play     int
	Favorite int
}

// Options configures a Session.
type Options struct {
	Capacities Capacities
	Logger     *slog.Logger
	Reporter   *errreport.Reporter
	Metrics    *metrics.Metrics
}

// Disc is the selected recommended playlist.
type Disc struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Creator  string `json:"creator,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// TopList is the selected chart.
type TopList struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Singer is the selected artist.
type Singer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// View is the derived playback state handed to the renderer.
type View struct {
	Mode         playlist.Mode    `json:"mode"`
	Queue        []playlist.Track `json:"queue"`
	Sequence     []playlist.Track `json:"sequence"`
	CurrentIndex int              `json:"currentIndex"`
	Current      *playlist.Track  `json:"current,omitempty"`
	Playing      bool             `json:"playing"`
	FullScreen   bool             `json:"fullScreen"`
}

// Session is the playback state aggregate.
type Session struct {
	store   Storage
	logger  *slog.Logger
	report  *errreport.Reporter
	metrics *metrics.Metrics

	queue      *playlist.PlayingQueue
	playing    bool
	fullScreen bool
	disc       Disc
	topList    TopList
	singer     Singer

	searches  *history.Cache[string, string]
	plays     *history.Cache[playlist.Track, string]
	favorites *history.Cache[playlist.Track, string]
}

// New creates a session and restores the history caches from store.
// Snapshots that cannot be read start empty.
func New(store Storage, opts Options) *Session {
	caps := opts.Capacities.withDefaults()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		store:     store,
		logger:    applog.WithComponent(logger, "session"),
		report:    opts.Reporter,
		metrics:   opts.Metrics,
		queue:     playlist.NewQueue(),
		searches:  history.New(caps.Search, searchKey),
		plays:     history.New(caps.Play, trackKey),
		favorites: history.New(caps.Favorite, trackKey),
	}

	restore(s, KeySearch, s.searches)
	restore(s, KeyPlay, s.plays)
	restore(s, KeyFavorite, s.favorites)
	return s
}

func (c Capacities) withDefaults() Capacities {
	if c.Search <= 0 {
		c.Search = DefaultSearchCapacity
	}
	if c.Play <= 0 {
		c.Play = DefaultPlayCapacity
	}
	if c.Favorite <= 0 {
		c.Favorite = DefaultFavoriteCapacity
	}
	return c
}

func searchKey(term string) string { return term }

func trackKey(t playlist.Track) string { return t.ID }

// View returns the current derived playback state.
func (s *Session) View() View {
	v := View{
		Mode:         s.queue.Mode(),
		Queue:        s.queue.Tracks(),
		Sequence:     s.queue.Sequence(),
		CurrentIndex: s.queue.CurrentIndex(),
		Playing:      s.playing,
		FullScreen:   s.fullScreen,
	}
	if cur := s.queue.Current(); cur != nil {
		t := *cur
		v.Current = &t
	}
	return v
}

// Mode returns the active play mode.
func (s *Session) Mode() playlist.Mode { return s.queue.Mode() }

// SetPlaylist replaces the canonical list and selects the track at
// startIndex. An out of range index selects nothing.
func (s *Session) SetPlaylist(tracks []playlist.Track, startIndex int) View {
	cur := s.queue.SetTracks(tracks, startIndex)
	s.metrics.QueueDerivation(s.queue.Mode().String())
	s.playing = cur != nil
	if cur != nil {
		s.fullScreen = true
	}
	return s.View()
}

// RandomPlay switches to random mode and starts from the first track of the
// shuffled queue.
func (s *Session) RandomPlay(tracks []playlist.Track) View {
	s.queue.SetMode(playlist.ModeRandom)
	s.queue.SetTracks(tracks, -1)
	s.metrics.QueueDerivation(playlist.ModeRandom.String())
	cur := s.queue.JumpTo(0)
	s.playing = cur != nil
	if cur != nil {
		s.fullScreen = true
	}
	return s.View()
}

// SelectTrack makes track current if it is in the queue, otherwise nothing
// is selected. The track is recorded in the play history either way.
func (s *Session) SelectTrack(track playlist.Track) View {
	idx := s.queue.Select(track)
	s.playing = idx >= 0
	s.addTrack(KeyPlay, s.plays, track)
	return s.View()
}

// SetMode switches the play mode, keeping the current track.
func (s *Session) SetMode(mode playlist.Mode) View {
	s.queue.SetMode(mode)
	s.metrics.QueueDerivation(mode.String())
	return s.View()
}

// CycleMode moves to the next play mode.
func (s *Session) CycleMode() View {
	mode := s.queue.CycleMode()
	s.metrics.QueueDerivation(mode.String())
	return s.View()
}

// Next moves to the following track, wrapping at the end.
func (s *Session) Next() View {
	s.queue.Next()
	return s.View()
}

// Previous moves to the preceding track, wrapping at the start.
func (s *Session) Previous() View {
	s.queue.Previous()
	return s.View()
}

// TrackEnded advances after the current track finished. Loop mode replays it.
func (s *Session) TrackEnded() View {
	if cur := s.queue.Advance(); cur != nil {
		s.addTrack(KeyPlay, s.plays, *cur)
	}
	return s.View()
}

// InsertTrack plays track next to the current one and makes it current.
func (s *Session) InsertTrack(track playlist.Track) View {
	s.queue.Insert(track)
	s.playing = true
	return s.View()
}

// DeleteTrack removes the track from the queue. Removing the last track
// stops playback.
func (s *Session) DeleteTrack(id string) View {
	s.queue.Remove(id)
	if s.queue.IsEmpty() {
		s.playing = false
	}
	return s.View()
}

// ClearPlaylist empties the queue and stops playback.
func (s *Session) ClearPlaylist() View {
	s.queue.Clear()
	s.playing = false
	return s.View()
}

func (s *Session) SetFullScreen(full bool) { s.fullScreen = full }

func (s *Session) SetPlaying(playing bool) {
	s.playing = playing && s.queue.Current() != nil
}

func (s *Session) SetDisc(d Disc)       { s.disc = d }
func (s *Session) Disc() Disc           { return s.disc }
func (s *Session) SetTopList(t TopList) { s.topList = t }
func (s *Session) TopList() TopList     { return s.topList }
func (s *Session) SetSinger(g Singer)   { s.singer = g }
func (s *Session) Singer() Singer       { return s.singer }

// RecordSearch adds term to the search history. Blank terms are ignored.
func (s *Session) RecordSearch(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	if _, evicted := s.searches.Add(term); evicted {
		s.metrics.HistoryEviction(KeySearch)
	}
	persist(s, KeySearch, s.searches)
}

// DeleteSearch removes term from the search history.
func (s *Session) DeleteSearch(term string) {
	if s.searches.Remove(strings.TrimSpace(term)) {
		persist(s, KeySearch, s.searches)
	}
}

// ClearSearchHistory empties the search history.
func (s *Session) ClearSearchHistory() {
	s.searches.Clear()
	persist(s, KeySearch, s.searches)
}

// SearchHistory returns the search terms, most recent first.
func (s *Session) SearchHistory() []string { return s.searches.All() }

// DeletePlay removes a track from the play history.
func (s *Session) DeletePlay(id string) {
	if s.plays.Remove(id) {
		persist(s, KeyPlay, s.plays)
	}
}

// ClearPlayHistory empties the play history.
func (s *Session) ClearPlayHistory() {
	s.plays.Clear()
	persist(s, KeyPlay, s.plays)
}

// PlayHistory returns the played tracks, most recent first.
func (s *Session) PlayHistory() []playlist.Track { return s.plays.All() }

// ToggleFavorite adds track to the favorites, or removes it if already
// there. Returns whether the track is a favorite afterwards.
func (s *Session) ToggleFavorite(track playlist.Track) bool {
	favorite := true
	if s.favorites.Remove(track.ID) {
		favorite = false
	} else if _, evicted := s.favorites.Add(track); evicted {
		s.metrics.HistoryEviction(KeyFavorite)
	}
	persist(s, KeyFavorite, s.favorites)
	return favorite
}

// IsFavorite reports whether the track with id is a favorite.
func (s *Session) IsFavorite(id string) bool { return s.favorites.Contains(id) }

// Favorites returns the favorite tracks, most recently added first.
func (s *Session) Favorites() []playlist.Track { return s.favorites.All() }

func (s *Session) addTrack(key string, c *history.Cache[playlist.Track, string], t playlist.Track) {
	if _, evicted := c.Add(t); evicted {
		s.metrics.HistoryEviction(key)
	}
	persist(s, key, c)
}
