package view

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// RegionResolver turns an ISO 3166 country code into a readable region name
type RegionResolver interface {
	RegionName(code string) (string, bool)
}

// DateFormatter produces the date labels shown in the widget
type DateFormatter interface {
	// DayLabel is the long label of the current-conditions panel
	DayLabel(t time.Time) string
	// Weekday is the short label of a forecast card
	Weekday(t time.Time) string
}

var unknownRegion = language.MustParseRegion("ZZ")

// TextRegionResolver resolves region names from the CLDR tables in x/text
type TextRegionResolver struct {
	namer display.Namer
}

// NewRegionResolver returns a resolver naming regions in the given language
func NewRegionResolver(tag language.Tag) *TextRegionResolver {
	return &TextRegionResolver{namer: display.Regions(tag)}
}

func (r *TextRegionResolver) RegionName(code string) (string, bool) {
	region, err := language.ParseRegion(strings.TrimSpace(code))
	// unparseable and unassigned codes collapse to ZZ, "Unknown Region"
	if err != nil || region == unknownRegion || !region.IsCountry() {
		return "", false
	}
	name := r.namer.Name(region)
	if name == "" {
		return "", false
	}
	return name, true
}

// EnglishDates formats dates with fixed English layouts, independent of host locale
type EnglishDates struct{}

func (EnglishDates) DayLabel(t time.Time) string { return t.Format("Monday, January 2") }
func (EnglishDates) Weekday(t time.Time) string  { return t.Format("Mon") }
