package musicapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/playstate/internal/playlist"
)

const artworkURLFormat = "https://y.gtimg.cn/music/photo_new/T002R300x300M000%s.jpg"

type envelope struct {
	Code int `json:"code"`
}

// Slide is one entry of the home page recommendation slider.
type Slide struct {
	ID      int    `json:"id"`
	LinkURL string `json:"linkUrl"`
	PicURL  string `json:"picUrl"`
}

type recommendResponse struct {
	envelope
	Data struct {
		Slider []Slide `json:"slider"`
	} `json:"data"`
}

// Disc is a recommended playlist.
type Disc struct {
	DissID   string `json:"dissid"`
	DissName string `json:"dissname"`
	ImgURL   string `json:"imgurl"`
	Creator  struct {
		Name string `json:"name"`
	} `json:"creator"`
}

type discListResponse struct {
	envelope
	Data struct {
		List []Disc `json:"list"`
	} `json:"data"`
}

// Song is a track as returned in a playlist's song list.
type Song struct {
	SongID   int    `json:"songid"`
	SongMID  string `json:"songmid"`
	SongName string `json:"songname"`
	Singer   []struct {
		Name string `json:"name"`
	} `json:"singer"`
	AlbumName string `json:"albumname"`
	AlbumMID  string `json:"albummid"`
	Interval  int    `json:"interval"` // seconds
}

type songListResponse struct {
	envelope
	CDList []struct {
		SongList []Song `json:"songlist"`
	} `json:"cdlist"`
}

// Track converts the song into a playable track. Songs without a media ID
// cannot be played and report false.
func (s Song) Track() (playlist.Track, bool) {
	if s.SongMID == "" || s.SongID == 0 {
		return playlist.Track{}, false
	}

	names := make([]string, 0, len(s.Singer))
	for _, singer := range s.Singer {
		names = append(names, singer.Name)
	}

	t := playlist.Track{
		ID:       s.SongMID,
		Title:    s.SongName,
		Artist:   strings.Join(names, "/"),
		Album:    s.AlbumName,
		Duration: time.Duration(s.Interval) * time.Second,
	}
	if s.AlbumMID != "" {
		t.ArtworkURL = fmt.Sprintf(artworkURLFormat, s.AlbumMID)
	}
	return t, true
}
