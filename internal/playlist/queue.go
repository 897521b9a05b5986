package playlist

// PlayingQueue wraps a canonical playlist with the effective play order
// derived from the current mode.
type PlayingQueue struct {
	sequence     *Playlist // canonical order
	order        *Playlist // effective order, derived from sequence and mode
	mode         Mode
	currentIndex int // index into order, -1 if nothing playing
}

// NewQueue creates a new empty playing queue in sequence mode.
func NewQueue() *PlayingQueue {
	return &PlayingQueue{
		sequence:     NewPlaylist(),
		order:        NewPlaylist(),
		mode:         ModeSequence,
		currentIndex: -1,
	}
}

// Current returns the currently playing track, or nil if none.
func (q *PlayingQueue) Current() *Track {
	if q.currentIndex < 0 || q.currentIndex >= q.order.Len() {
		return nil
	}
	return q.order.Track(q.currentIndex)
}

// CurrentIndex returns the index of the currently playing track (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// Mode returns the current play mode.
func (q *PlayingQueue) Mode() Mode {
	return q.mode
}

// SetTracks replaces the canonical list and re-derives the play order with
// the track at start as current. An out of range start selects nothing.
// Returns the current track.
func (q *PlayingQueue) SetTracks(tracks []Track, start int) *Track {
	var current *Track
	if start >= 0 && start < len(tracks) {
		t := tracks[start]
		current = &t
	}
	q.sequence.Set(tracks)
	q.derive(current)
	return q.Current()
}

// SetMode switches the play mode. The current track stays current; only its
// position and the order of the other tracks may change.
func (q *PlayingQueue) SetMode(mode Mode) {
	var current *Track
	if t := q.Current(); t != nil {
		c := *t
		current = &c
	}
	q.mode = mode
	q.derive(current)
}

// CycleMode advances to the next mode and returns it.
func (q *PlayingQueue) CycleMode() Mode {
	q.SetMode(q.mode.Next())
	return q.mode
}

func (q *PlayingQueue) derive(current *Track) {
	order, index := DeriveQueue(q.sequence.Tracks(), q.mode, current)
	q.order.Set(order)
	q.currentIndex = index
}

// Select makes track current if it is in the queue, otherwise clears the
// selection. Returns the new current index.
func (q *PlayingQueue) Select(track Track) int {
	q.currentIndex = q.order.IndexOf(track.ID)
	return q.currentIndex
}

// JumpTo sets the current index to the specified position.
// Returns the track at that position, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *Track {
	if index < 0 || index >= q.order.Len() {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// Next moves to the following track, wrapping to the start.
// With nothing selected it starts at the first track.
// Returns nil if the queue is empty.
func (q *PlayingQueue) Next() *Track {
	if q.order.Len() == 0 {
		return nil
	}
	q.currentIndex = (q.currentIndex + 1) % q.order.Len()
	return q.Current()
}

// Previous moves to the preceding track, wrapping to the end.
// Returns nil if the queue is empty.
func (q *PlayingQueue) Previous() *Track {
	n := q.order.Len()
	if n == 0 {
		return nil
	}
	if q.currentIndex <= 0 {
		q.currentIndex = n - 1
	} else {
		q.currentIndex--
	}
	return q.Current()
}

// Advance moves on after the current track finished playing.
// Loop mode replays the same track; other modes behave like Next.
func (q *PlayingQueue) Advance() *Track {
	if q.mode == ModeLoopSingle && q.Current() != nil {
		return q.Current()
	}
	return q.Next()
}

// Insert adds track right after the current one and makes it current.
// An existing copy of the track is removed first, unless it is already
// current, in which case the queue is left as is.
// Returns the new current track.
func (q *PlayingQueue) Insert(track Track) *Track {
	if cur := q.Current(); cur != nil && cur.ID == track.ID {
		return cur
	}
	q.Remove(track.ID)

	var seqIndex int
	if cur := q.Current(); cur != nil {
		seqIndex = q.sequence.IndexOf(cur.ID) + 1
	}
	q.sequence.Insert(seqIndex, track)

	index := q.currentIndex + 1
	q.order.Insert(index, track)
	q.currentIndex = index
	return q.Current()
}

// Remove deletes the track with the given ID from both orders.
// Adjusts currentIndex if necessary.
func (q *PlayingQueue) Remove(id string) bool {
	index := q.order.IndexOf(id)
	if index < 0 {
		return false
	}
	q.order.Remove(index)
	if i := q.sequence.IndexOf(id); i >= 0 {
		q.sequence.Remove(i)
	}

	// Adjust current index after removal
	if q.currentIndex > index {
		q.currentIndex--
	} else if q.currentIndex == index {
		// Removed current track - stay at same index (now points to next)
		// If we're past the end, clamp
		if q.currentIndex >= q.order.Len() {
			q.currentIndex = q.order.Len() - 1
		}
	}

	return true
}

// Clear removes all tracks and resets playback. The mode is kept.
func (q *PlayingQueue) Clear() {
	q.sequence.Clear()
	q.order.Clear()
	q.currentIndex = -1
}

// Tracks returns the tracks in play order.
func (q *PlayingQueue) Tracks() []Track {
	return q.order.Tracks()
}

// Sequence returns the tracks in canonical order.
func (q *PlayingQueue) Sequence() []Track {
	return q.sequence.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	return q.order.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return q.order.Len() == 0
}
