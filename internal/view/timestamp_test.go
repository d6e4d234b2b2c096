package view_test

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/nfrund/postwall/internal/domain"
	"github.com/nfrund/postwall/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeFormatter(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := view.NewTimeFormatter(time.UTC)

	tests := []struct {
		name           string
		acceptLanguage string
		want           string
	}{
		{"empty header falls back to Swedish", "", "2024-01-01 00:00:00"},
		{"Swedish", "sv-SE,sv;q=0.9", "2024-01-01 00:00:00"},
		{"American English", "en-US,en;q=0.8", "1/1/2024, 12:00:00 AM"},
		{"British English", "en-GB", "01/01/2024, 00:00:00"},
		{"German", "de-DE", "1.1.2024, 00:00:00"},
		{"unsupported language", "ja-JP", "2024-01-01 00:00:00"},
		{"malformed header", ";;;", "2024-01-01 00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.For(tt.acceptLanguage)(ts))
		})
	}
}

func TestTimeFormatter_Location(t *testing.T) {
	stockholm := time.FixedZone("CET", 3600)
	f := view.NewTimeFormatter(stockholm)
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01 01:00:00", f.For("sv")(ts))
}

func TestTimeFormatter_FloatingKeepsWallClock(t *testing.T) {
	stockholm, err := time.LoadLocation("Europe/Stockholm")
	require.NoError(t, err)

	var p domain.Post
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","text":"Hi","createdAt":"2024-01-01T10:30:00"}`), &p))

	f := view.NewTimeFormatter(stockholm)
	assert.Equal(t, "2024-01-01 10:30:00", f.For("sv")(p.CreatedAt))
	assert.Equal(t, "1/1/2024, 10:30:00 AM", f.For("en-US")(p.CreatedAt))
}

func TestTimeFormatter_ZeroTime(t *testing.T) {
	f := view.NewTimeFormatter(time.UTC)
	assert.Empty(t, f.For("sv")(time.Time{}))
	assert.Empty(t, f.For("en-US")(time.Time{}))
}
