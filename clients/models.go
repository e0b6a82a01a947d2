package clients

// IncomingMessage is an inbound chat text message
type IncomingMessage struct {
	ChatID    int64
	MessageID int
	Username  string
	Text      string
}

// OutgoingMessage is a reply to a previously received message
type OutgoingMessage struct {
	ChatID           int64
	ReplyToMessageID int
	Text             string
	Markdown         bool
}
