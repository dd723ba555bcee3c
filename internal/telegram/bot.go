package telegram

import (
	"fmt"
	"strings"

	"go-jobhunter-agent/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func (b *Bot) escapeMarkdown(text string) string {
	if text == "" {
		return "N/A"
	}
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// SendJob announces an accepted posting.
func (b *Bot) SendJob(p models.Posting) error {
	msgText := "🚀 *New Job Found\\!*\n\n"
	msgText += fmt.Sprintf("🏢 *Company:* %s\n", b.escapeMarkdown(p.Company))
	msgText += fmt.Sprintf("💼 *Role:* %s\n", b.escapeMarkdown(p.Title))
	msgText += fmt.Sprintf("🌍 *Location:* %s\n", b.escapeMarkdown(p.Country))
	msgText += fmt.Sprintf("📡 *Source:* %s\n", b.escapeMarkdown(p.Source))
	msgText += fmt.Sprintf("✈️ *Visa:* %s\n", b.escapeMarkdown(p.VisaSponsorship))
	msgText += fmt.Sprintf("📈 *Score:* %d\n", p.RelevanceScore)
	msgText += fmt.Sprintf("🔗 [Apply Here](%s)", p.URL)

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 View Job", p.URL),
		),
	)

	msg := tgbotapi.NewMessage(b.chatID, msgText)
	msg.ParseMode = "MarkdownV2"
	msg.ReplyMarkup = keyboard

	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
