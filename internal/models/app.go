package models

// Attachment is a named link returned with an answer.
type Attachment struct {
	Name string
	URL  string
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Input          string       // User input field
	Status         string       // Status bar text
	Loading        bool         // Submission in flight
	LoadingDots    int          // Animation counter for loading dots
	Width          int          // Terminal width
	Height         int          // Terminal height
	Endpoint       string       // Currently resolved endpoint
	AnswerMarkdown string       // Raw markdown of the latest answer
	Attachments    []Attachment // Attachments of the latest answer
	PingStatus     PingStatus   // Latest reachability state
	Notices        []string     // Program notices (welcome, warnings)
	PendingImage   string       // Image path staged for the next submission
}
