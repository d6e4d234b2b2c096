package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/nfrund/postwall/internal/domain"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// PostDisplay represents a post for display purposes
type PostDisplay struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// WallDisplay is the JSON shape of a wall.
type WallDisplay struct {
	DisplayName string        `json:"displayName"`
	Bio         string        `json:"bio"`
	Posts       []PostDisplay `json:"posts"`
}

// Printer writes posts as a table or as JSON.
type Printer struct {
	w      io.Writer
	format string
	stamp  func(time.Time) string
}

// NewPrinter creates a Printer. stamp formats timestamps for table output.
func NewPrinter(w io.Writer, format string, stamp func(time.Time) string) *Printer {
	return &Printer{w: w, format: format, stamp: stamp}
}

// Posts prints a post list. byline, when set, is appended to each timestamp.
func (p *Printer) Posts(posts []domain.Post, byline string) error {
	if p.format == FormatJSON {
		return p.json(toDisplay(posts))
	}

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tCREATED\tTEXT")
	fmt.Fprintln(w, "--\t-------\t----")

	if len(posts) == 0 {
		fmt.Fprintln(w, "Inga inlägg hittades")
		return nil
	}
	for _, post := range posts {
		created := p.stamp(post.CreatedAt)
		if byline != "" {
			created += " av " + byline
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", post.ID, created, truncateString(post.Text, 60))
	}
	return nil
}

// Wall prints a profile header followed by its posts.
func (p *Printer) Wall(user *domain.UserProfile, posts []domain.Post) error {
	profile := domain.PlaceholderProfile()
	if user != nil {
		profile = *user
	}

	if p.format == FormatJSON {
		return p.json(WallDisplay{
			DisplayName: profile.DisplayName,
			Bio:         profile.Bio,
			Posts:       toDisplay(posts),
		})
	}

	fmt.Fprintln(p.w, profile.DisplayName)
	fmt.Fprintf(p.w, "Om mig: %s\n\n", profile.Bio)
	return p.Posts(posts, profile.DisplayName)
}

func (p *Printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toDisplay(posts []domain.Post) []PostDisplay {
	out := make([]PostDisplay, len(posts))
	for i, post := range posts {
		out[i] = PostDisplay{ID: post.ID, Text: post.Text}
		switch {
		case post.CreatedAt.IsZero():
		case domain.IsFloating(post.CreatedAt):
			out[i].CreatedAt = post.CreatedAt.Format("2006-01-02T15:04:05")
		default:
			out[i].CreatedAt = post.CreatedAt.UTC().Format(time.RFC3339)
		}
	}
	return out
}

// truncateString shortens s to max runes, marking the cut with "...".
func truncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
