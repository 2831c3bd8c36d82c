package chat

// MaxMessageLen is the Telegram per-message character limit.
const MaxMessageLen = 4096

// SplitMessage splits text into consecutive chunks of at most limit runes.
// Concatenating the chunks in order reproduces the original text.
func SplitMessage(text string, limit int) []string {
	if limit < 1 {
		limit = MaxMessageLen
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// SendChunked delivers text as one or more messages, in order, each within
// the platform message limit.
func SendChunked(m Messenger, chatID, text string) error {
	for _, chunk := range SplitMessage(text, MaxMessageLen) {
		if err := m.SendText(chatID, chunk); err != nil {
			return err
		}
	}
	return nil
}

// RowsFromOptions builds a one-button-per-row keyboard from a list of
// choices, matching the catalog selection keyboards.
func RowsFromOptions(options []string) [][]MenuButton {
	rows := make([][]MenuButton, 0, len(options))
	for _, opt := range options {
		rows = append(rows, []MenuButton{{Text: opt}})
	}
	return rows
}
