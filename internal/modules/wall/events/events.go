package events

// TopicPostCreated carries PostCreated after the backend accepted a post.
const TopicPostCreated = "wall.post.created"

// PostCreated is published once per successful post creation.
type PostCreated struct {
	UserID     string `json:"userID"`
	TextLength int    `json:"textLength"`
	Timestamp  string `json:"timestamp"`
}
