package models

// Reply is the text sent back to the chat for one inbound message.
// Markdown replies have every dynamic value escaped for MarkdownV2.
type Reply struct {
	Text     string
	Markdown bool
}

func PlainReply(text string) Reply {
	return Reply{Text: text}
}

func MarkdownReply(text string) Reply {
	return Reply{Text: text, Markdown: true}
}
