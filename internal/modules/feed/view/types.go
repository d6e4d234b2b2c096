package view

// PostItem is a post prepared for display.
type PostItem struct {
	ID        string
	Text      string
	Timestamp string
}

// Data is the view model for a loaded feed.
type Data struct {
	Posts   []PostItem
	WallURL string
	// ErrorMessage is rendered as a dismissible banner when set.
	ErrorMessage string
}
