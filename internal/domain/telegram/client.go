package telegram

import "gopkg.in/telebot.v3"

// Client defines an interface for delivering messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot library.
// Failures are per-call: a caller looping over many recipients catches and
// logs each one without aborting the loop.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
	SendDocument(recipientChatID int64, data []byte, filename, caption string) error
}
