// file: internal/models/work.go
// version: 1.3.0
// guid: 5a1c8e2f-9d4b-4c7a-b3e6-0f82d5a91c47

package models

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Category identifies one of the five catalog collections.
type Category string

const (
	CategoryMangas Category = "mangas"
	CategoryAnimes Category = "animes"
	CategoryFilms  Category = "films"
	CategorySeries Category = "series"
	CategoryNovels Category = "novels"
)

// Categories lists every known category in display order.
var Categories = []Category{CategoryMangas, CategoryAnimes, CategoryFilms, CategorySeries, CategoryNovels}

// Valid reports whether c names a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryMangas, CategoryAnimes, CategoryFilms, CategorySeries, CategoryNovels:
		return true
	}
	return false
}

// ChapterCounted reports whether works in this category track chapter totals
// (and therefore support chapter-range filtering and the "chapters" sort key).
func (c Category) ChapterCounted() bool {
	return c == CategoryMangas || c == CategoryNovels
}

// Episodic reports whether works in this category track episode/season counts.
func (c Category) Episodic() bool {
	return c == CategoryAnimes || c == CategorySeries
}

// ViewerKey selects which viewer's progress fields apply.
type ViewerKey string

const (
	ViewerJ ViewerKey = "J"
	ViewerM ViewerKey = "M"
)

// Work is a single catalog record. The engine treats works as read-only
// input; every accessor degrades to a zero value on absent or malformed
// fields instead of failing.
type Work struct {
	ID          string     `json:"id"`
	Category    Category   `json:"category,omitempty"`
	Title       string     `json:"title"`
	OtherTitles StringList `json:"otherTitles,omitempty"`
	Description string     `json:"description,omitempty"`
	Genres      []string   `json:"genres,omitempty"`
	Statut      string     `json:"statut,omitempty"`
	CoverURL    string     `json:"cover,omitempty"`
	Note        string     `json:"note,omitempty"`

	// Chapter-counted categories (mangas/novels).
	ChTotal float64      `json:"chTotal,omitempty"`
	ChLus   FlexChapters `json:"chLus,omitempty"`  // viewer M chapters read
	ChJade  FlexChapters `json:"chJade,omitempty"` // viewer J chapters read

	// Episodic categories (animes/series).
	EpisodeTotal float64 `json:"episodeTotal,omitempty"`
	SaisonTotal  float64 `json:"saisonTotal,omitempty"`
	EpisodeJ     float64 `json:"episodeJ,omitempty"`
	EpisodeM     float64 `json:"episodeM,omitempty"`
	SaisonJ      float64 `json:"saisonJ,omitempty"`
	SaisonM      float64 `json:"saisonM,omitempty"`

	// Films.
	DerniereEcoute string `json:"derniereEcoute,omitempty"`

	Date            FlexTime `json:"date,omitempty"`
	DerniereLecture FlexTime `json:"derniereLecture,omitempty"`
	ModifieLe       FlexTime `json:"modifieLe,omitempty"`
}

// ChaptersReadFor returns the raw chapters-read value for the given viewer.
func (w *Work) ChaptersReadFor(viewer ViewerKey) FlexChapters {
	if viewer == ViewerJ {
		return w.ChJade
	}
	return w.ChLus
}

// EpisodeFor returns the episode counter for the given viewer.
func (w *Work) EpisodeFor(viewer ViewerKey) float64 {
	if viewer == ViewerJ {
		return w.EpisodeJ
	}
	return w.EpisodeM
}

// SaisonFor returns the season counter for the given viewer.
func (w *Work) SaisonFor(viewer ViewerKey) float64 {
	if viewer == ViewerJ {
		return w.SaisonJ
	}
	return w.SaisonM
}

// StringList accepts either a JSON array of strings or a single
// comma-delimited string, normalizing both to a slice.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Silent degradation: anything unrecognized becomes empty.
		*l = nil
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	*l = out
	return nil
}

// FlexChapters is a chapters-read value that arrives either as a number or
// as a period/slash-delimited string such as "12.4.0.0" (one segment per
// reading track). The raw form is preserved for round-tripping.
type FlexChapters struct {
	Raw string
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexChapters) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.Raw = strconv.FormatFloat(n, 'f', -1, 64)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Raw = s
		return nil
	}
	f.Raw = ""
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexChapters) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Raw)
}

// Segments returns exactly four integer reading-track positions, padding
// missing ones with zero.
func (f FlexChapters) Segments() [4]int {
	var out [4]int
	if f.Raw == "" {
		return out
	}
	parts := strings.FieldsFunc(f.Raw, func(r rune) bool { return r == '.' || r == '/' })
	i := 0
	for _, p := range parts {
		if i >= 4 {
			break
		}
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			out[i] = n
			i++
		}
	}
	return out
}

// Max returns the highest chapter reached across all reading tracks,
// or 0 when the value is absent or unparseable.
func (f FlexChapters) Max() int {
	if f.Raw == "" {
		return 0
	}
	best := 0
	parts := strings.FieldsFunc(f.Raw, func(r rune) bool { return r == '.' || r == '/' })
	for _, p := range parts {
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil && n > best {
			best = n
		}
	}
	return best
}

// IsZero reports whether no chapters have been read.
func (f FlexChapters) IsZero() bool { return f.Max() == 0 }

// FlexTime is a timestamp that arrives as an RFC3339/date string, an epoch
// milliseconds number, or a document-store object {"seconds": n}.
type FlexTime struct {
	ms int64
}

var frDateRe = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})$`)

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	t.ms = 0
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		t.ms = int64(n)
		return nil
	}
	var obj struct {
		Seconds int64 `json:"seconds"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Seconds != 0 {
		t.ms = obj.Seconds * 1000
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.ms = parseTimeString(s)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ms)
}

func parseTimeString(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, layout := range flexTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UnixMilli()
		}
	}
	// dd/mm/yyyy, the shape manual entries use.
	if m := frDateRe.FindStringSubmatch(s); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC).UnixMilli()
	}
	return 0
}

// Millis returns the timestamp as epoch milliseconds, 0 when absent.
func (t FlexTime) Millis() int64 { return t.ms }

// IsZero reports whether the timestamp is absent.
func (t FlexTime) IsZero() bool { return t.ms == 0 }

// NewFlexTime builds a FlexTime from a time.Time, mainly for tests and
// store writes.
func NewFlexTime(ts time.Time) FlexTime {
	if ts.IsZero() {
		return FlexTime{}
	}
	return FlexTime{ms: ts.UnixMilli()}
}

// FlexTimeFromMillis builds a FlexTime from epoch milliseconds.
func FlexTimeFromMillis(ms int64) FlexTime { return FlexTime{ms: ms} }
