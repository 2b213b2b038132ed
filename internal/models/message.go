package models

type MessageType int

const (
	User MessageType = iota
	Assistant
	Program
)

// Message is one entry in the chat transcript. The transcript is append-only
// and lives only for the current run; the server keeps its own history.
type Message struct {
	Content string
	Type    MessageType
}

// PlaceholderText is the sentinel the server renders into unset consideration
// boxes. Internally an unset field is just an empty string; the sentinel only
// exists at the scrape and render boundaries.
const PlaceholderText = "Will be filled by AI..."
