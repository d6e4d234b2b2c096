package view

import (
	"time"

	"github.com/nfrund/postwall/internal/domain"
	"golang.org/x/text/language"
)

// supportedLocales lists the tags with a dedicated layout. Swedish comes
// first so it wins when nothing in Accept-Language matches.
var supportedLocales = []struct {
	tag    language.Tag
	layout string
}{
	{language.Swedish, "2006-01-02 15:04:05"},
	{language.AmericanEnglish, "1/2/2006, 3:04:05 PM"},
	{language.BritishEnglish, "02/01/2006, 15:04:05"},
	{language.German, "2.1.2006, 15:04:05"},
}

// TimeFormatter renders post timestamps in the viewer's locale.
type TimeFormatter struct {
	loc     *time.Location
	matcher language.Matcher
}

// NewTimeFormatter creates a formatter that shows times in loc.
func NewTimeFormatter(loc *time.Location) *TimeFormatter {
	if loc == nil {
		loc = time.Local
	}
	tags := make([]language.Tag, len(supportedLocales))
	for i, l := range supportedLocales {
		tags[i] = l.tag
	}
	return &TimeFormatter{
		loc:     loc,
		matcher: language.NewMatcher(tags),
	}
}

// Layout returns the time layout best matching an Accept-Language header.
func (f *TimeFormatter) Layout(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supportedLocales[0].layout
	}
	_, idx, _ := f.matcher.Match(tags...)
	return supportedLocales[idx].layout
}

// For binds the formatter to one request's Accept-Language header. The
// zero time renders as an empty string. Floating times keep their wall
// clock.
func (f *TimeFormatter) For(acceptLanguage string) func(time.Time) string {
	layout := f.Layout(acceptLanguage)
	return func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		if !domain.IsFloating(t) {
			t = t.In(f.loc)
		}
		return t.Format(layout)
	}
}
