package musicapi

import (
	"net/url"
	"strconv"
)

// Values shared by every request to the music service.
const (
	defaultGTK     = 1928093487
	defaultCharset = "utf-8"
)

// CommonParams are sent with every request.
type CommonParams struct {
	GTK        int
	InCharset  string
	OutCharset string
	Notice     int
	Format     string
}

// DefaultCommonParams returns the parameters the service expects from a web client.
func DefaultCommonParams() CommonParams {
	return CommonParams{
		GTK:        defaultGTK,
		InCharset:  defaultCharset,
		OutCharset: defaultCharset,
		Notice:     0,
		Format:     "jsonp",
	}
}

func (p CommonParams) Values() url.Values {
	v := url.Values{}
	v.Set("g_tk", strconv.Itoa(p.GTK))
	v.Set("inCharset", p.InCharset)
	v.Set("outCharset", p.OutCharset)
	v.Set("notice", strconv.Itoa(p.Notice))
	v.Set("format", p.Format)
	return v
}

// RecommendParams query the home page recommendation slider.
type RecommendParams struct {
	CommonParams
	Platform    string
	UIN         int
	NeedNewCode int
}

func NewRecommendParams() RecommendParams {
	return RecommendParams{
		CommonParams: DefaultCommonParams(),
		Platform:     "h5",
		UIN:          0,
		NeedNewCode:  1,
	}
}

func (p RecommendParams) Values() url.Values {
	v := p.CommonParams.Values()
	v.Set("platform", p.Platform)
	v.Set("uin", strconv.Itoa(p.UIN))
	v.Set("needNewCode", strconv.Itoa(p.NeedNewCode))
	return v
}

// DiscListParams query a page of recommended playlists.
type DiscListParams struct {
	CommonParams
	Platform    string
	HostUIN     int
	Sin         int // first item
	Ein         int // last item, inclusive
	SortID      int
	NeedNewCode int
	CategoryID  int
	Rnd         float64 // cache buster
}

// NewDiscListParams returns the first page of 30 playlists. rnd is sent as
// a cache buster.
func NewDiscListParams(rnd float64) DiscListParams {
	common := DefaultCommonParams()
	common.Format = "json"
	return DiscListParams{
		CommonParams: common,
		Platform:     "yqq",
		HostUIN:      0,
		Sin:          0,
		Ein:          29,
		SortID:       5,
		NeedNewCode:  0,
		CategoryID:   10000000,
		Rnd:          rnd,
	}
}

func (p DiscListParams) Values() url.Values {
	v := p.CommonParams.Values()
	v.Set("platform", p.Platform)
	v.Set("hostUin", strconv.Itoa(p.HostUIN))
	v.Set("sin", strconv.Itoa(p.Sin))
	v.Set("ein", strconv.Itoa(p.Ein))
	v.Set("sortId", strconv.Itoa(p.SortID))
	v.Set("needNewCode", strconv.Itoa(p.NeedNewCode))
	v.Set("categoryId", strconv.Itoa(p.CategoryID))
	v.Set("rnd", strconv.FormatFloat(p.Rnd, 'f', -1, 64))
	return v
}

// SongListParams query the songs of one playlist.
type SongListParams struct {
	CommonParams
	DissTID     string
	Type        int
	JSON        int
	UTF8        int
	OnlySong    int
	Platform    string
	HostUIN     int
	NeedNewCode int
}

func NewSongListParams(disstid string) SongListParams {
	return SongListParams{
		CommonParams: DefaultCommonParams(),
		DissTID:      disstid,
		Type:         1,
		JSON:         1,
		UTF8:         1,
		OnlySong:     0,
		Platform:     "yqq",
		HostUIN:      0,
		NeedNewCode:  0,
	}
}

func (p SongListParams) Values() url.Values {
	v := p.CommonParams.Values()
	v.Set("disstid", p.DissTID)
	v.Set("type", strconv.Itoa(p.Type))
	v.Set("json", strconv.Itoa(p.JSON))
	v.Set("utf8", strconv.Itoa(p.UTF8))
	v.Set("onlysong", strconv.Itoa(p.OnlySong))
	v.Set("platform", p.Platform)
	v.Set("hostUin", strconv.Itoa(p.HostUIN))
	v.Set("needNewCode", strconv.Itoa(p.NeedNewCode))
	return v
}
