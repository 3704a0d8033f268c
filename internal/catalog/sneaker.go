package catalog

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Sneaker is the subset of a catalog entry the pages display.
type Sneaker struct {
	ID           string
	Name         string
	Title        string
	Brand        string
	Colorway     string
	Gender       string
	ReleaseDate  string
	Year         int64
	RetailPrice  decimal.Decimal
	HasPrice     bool
	ImageURL     string
	ThumbnailURL string
}

// Count returns the number of entries under "results".
func Count(payload json.RawMessage) int {
	return len(gjson.GetBytes(payload, "results").Array())
}

// Sneakers decodes the entries of a catalog payload. Both the list shape
// ({"results": [...]}) and a bare entry object are accepted; anything else
// yields no entries.
func Sneakers(payload json.RawMessage) []Sneaker {
	root := gjson.ParseBytes(payload)

	results := root.Get("results")
	if results.IsArray() {
		items := results.Array()
		out := make([]Sneaker, 0, len(items))
		for _, item := range items {
			if item.IsObject() {
				out = append(out, parseSneaker(item))
			}
		}
		return out
	}

	if root.IsObject() && root.Get("id").Exists() {
		return []Sneaker{parseSneaker(root)}
	}
	return nil
}

func parseSneaker(r gjson.Result) Sneaker {
	s := Sneaker{
		ID:           r.Get("id").String(),
		Name:         r.Get("name").String(),
		Title:        r.Get("title").String(),
		Brand:        r.Get("brand").String(),
		Colorway:     r.Get("colorway").String(),
		Gender:       r.Get("gender").String(),
		ReleaseDate:  r.Get("releaseDate").String(),
		Year:         r.Get("year").Int(),
		ImageURL:     r.Get("media.imageUrl").String(),
		ThumbnailURL: r.Get("media.thumbUrl").String(),
	}
	if s.ThumbnailURL == "" {
		s.ThumbnailURL = r.Get("media.smallImageUrl").String()
	}
	if s.Title == "" {
		s.Title = s.Name
	}

	if price := r.Get("retailPrice"); price.Exists() && price.Type == gjson.Number {
		if d, err := decimal.NewFromString(price.Raw); err == nil {
			s.RetailPrice = d
			s.HasPrice = true
		}
	}
	return s
}
