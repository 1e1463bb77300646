package notifier

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

// telegramNotifier delivers messages through the Telegram Bot API. User ids in
// the store are Telegram chat ids stored as strings.
type telegramNotifier struct {
	bot         *tgbotapi.BotAPI
	adminChatID int64
	log         logger.Interface
}

func NewTelegram(token string, adminChatID int64, log logger.Interface) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("notifier: telegram init: %w", err)
	}

	log.Info("notifier - telegram - authorized as %s", bot.Self.UserName)

	return &telegramNotifier{
		bot:         bot,
		adminChatID: adminChatID,
		log:         log,
	}, nil
}

func (n *telegramNotifier) SendToUser(_ context.Context, userID string, text string) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("notifier: bad chat id %q: %w", userID, err)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("notifier: send to user %s: %w", userID, err)
	}

	return nil
}

func (n *telegramNotifier) SendToAdmin(_ context.Context, text string) error {
	if n.adminChatID == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(n.adminChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("notifier: send to admin: %w", err)
	}

	return nil
}
