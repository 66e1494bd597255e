package telegram

import (
	"bytes"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the domain telegram.Client interface using the
// gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified recipient.
func (tba *TelebotAdapter) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := &telebot.User{ID: recipientChatID}
	_, err := tba.bot.Send(recipient, text, options)
	return err
}

// SendDocument uploads the given bytes as a document with a filename and caption.
func (tba *TelebotAdapter) SendDocument(recipientChatID int64, data []byte, filename, caption string) error {
	doc := &telebot.Document{
		File:     telebot.FromReader(bytes.NewReader(data)),
		FileName: filename,
		Caption:  caption,
	}
	recipient := &telebot.User{ID: recipientChatID}
	_, err := tba.bot.Send(recipient, doc)
	return err
}
