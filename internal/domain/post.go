package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Post is a single post owned by the backend. Views only hold copies.
type Post struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserProfile is the public profile shown at the top of a wall.
type UserProfile struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
}

// PlaceholderDisplayName is shown when the backend returns no profile.
const PlaceholderDisplayName = "Användare"

// PlaceholderProfile returns the profile substituted for a missing user.
func PlaceholderProfile() UserProfile {
	return UserProfile{DisplayName: PlaceholderDisplayName}
}

// Floating is the location of timestamps that arrived without a zone
// offset. They hold the sender's wall clock and are displayed unchanged in
// every location.
var Floating = time.FixedZone("floating", 0)

// IsFloating reports whether t was decoded without a zone offset.
func IsFloating(t time.Time) bool {
	return t.Location() == Floating
}

// zonedLayout is tried first; localLayouts carry no offset.
const zonedLayout = time.RFC3339Nano

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON accepts ids as strings or numbers and createdAt as either an
// ISO-8601 string or epoch milliseconds. A createdAt that cannot be parsed
// leaves CreatedAt at the zero time instead of failing the whole payload.
func (p *Post) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        json.RawMessage `json:"id"`
		Text      string          `json:"text"`
		CreatedAt json.RawMessage `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}

	p.ID = id
	p.Text = raw.Text
	p.CreatedAt = decodeTimestamp(raw.CreatedAt)
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode post id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decode post id: %w", err)
	}
	return n.String(), nil
}

func decodeTimestamp(raw json.RawMessage) time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}
	}

	if raw[0] != '"' {
		ms, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return time.Time{}
		}
		return time.UnixMilli(int64(ms)).UTC()
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}
	if t, err := time.Parse(zonedLayout, s); err == nil {
		return t
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, Floating); err == nil {
			return t
		}
	}
	return time.Time{}
}
