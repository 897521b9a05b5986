package playlist

import "time"

// Track represents a single track in a playlist.
// Two tracks are the same track when their IDs match.
type Track struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Artist     string        `json:"artist,omitempty"`
	Album      string        `json:"album,omitempty"`
	ArtworkURL string        `json:"artworkUrl,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
}

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []Track
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks: make([]Track, 0),
	}
}

// Set replaces the playlist contents with a copy of tracks.
func (p *Playlist) Set(tracks []Track) {
	p.tracks = append(p.tracks[:0], tracks...)
}

// Insert places track at index, clamped to the playlist bounds.
func (p *Playlist) Insert(index int, track Track) {
	index = max(0, min(index, len(p.tracks)))
	p.tracks = append(p.tracks, Track{})
	copy(p.tracks[index+1:], p.tracks[index:])
	p.tracks[index] = track
}

// Remove removes the track at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.tracks) {
		return false
	}
	p.tracks = append(p.tracks[:index], p.tracks[index+1:]...)
	return true
}

// IndexOf returns the position of the track with the given ID, or -1.
func (p *Playlist) IndexOf(id string) int {
	for i := range p.tracks {
		if p.tracks[i].ID == id {
			return i
		}
	}
	return -1
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}
