package tg_client

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Client struct {
	bot *tgbotapi.BotAPI
}

// New создает нового бота под токен из запроса. Токен приходит с каждым
// запросом и может отличаться, поэтому клиент не кэшируется между запросами.
func New(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %w", err)
	}

	return &Client{bot: bot}, nil
}

// SendMessage отправляет одно сообщение в чат. chatID - числовой id группы
// либо @username канала. markdown включает режим MarkdownV2.
func (c *Client) SendMessage(chatID string, text string, markdown bool) error {
	var msg tgbotapi.MessageConfig

	if strings.HasPrefix(chatID, "@") {
		msg = tgbotapi.NewMessageToChannel(chatID, text)
	} else {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("некорректный id чата %q: %w", chatID, err)
		}
		msg = tgbotapi.NewMessage(id, text)
	}

	if markdown {
		msg.ParseMode = tgbotapi.ModeMarkdownV2
	}

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("ошибка отправки сообщения в тг: %w", err)
	}

	return nil
}
