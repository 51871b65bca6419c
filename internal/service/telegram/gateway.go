package telegram

import (
	"StaffGate/internal/lib/sl"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

// API defines the provider bot methods the gateway needs. Keeping this
// narrow lets tests substitute a fake without the concrete bot type.
type API interface {
	GetChat(chatId int64, opts *tgbotapi.GetChatOpts) (*tgbotapi.ChatFullInfo, error)
	SendMessage(chatId int64, text string, opts *tgbotapi.SendMessageOpts) (*tgbotapi.Message, error)
	EditMessageText(text string, opts *tgbotapi.EditMessageTextOpts) (*tgbotapi.Message, bool, error)
	GetFile(fileId string, opts *tgbotapi.GetFileOpts) (*tgbotapi.File, error)
}

// MenuButton is one button of a persistent reply keyboard.
type MenuButton struct {
	Text string
}

// InlineButton is one button of an inline keyboard carrying a callback
// token.
type InlineButton struct {
	Text string
	Data string
}

const fileEndpoint = "https://api.telegram.org/file/bot"

// Gateway is a thin client for the messaging provider. Calls are
// one-shot: failures are returned to the caller, never retried here.
type Gateway struct {
	api    API
	token  string
	client *http.Client
	log    *slog.Logger
}

func NewGateway(api API, token string, logger *slog.Logger) *Gateway {
	return &Gateway{
		api:    api,
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    logger.With(sl.Module("telegram-gateway")),
	}
}

// VerifyChat checks that the chat is reachable before anything is sent
// to it.
func (g *Gateway) VerifyChat(chatID int64) error {
	if _, err := g.api.GetChat(chatID, nil); err != nil {
		return fmt.Errorf("verify chat %d: %w", chatID, err)
	}
	return nil
}

// SendText sends an HTML-formatted message without touching the
// current keyboard.
func (g *Gateway) SendText(chatID int64, text string) error {
	_, err := g.api.SendMessage(chatID, text, &tgbotapi.SendMessageOpts{
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendMenu sends a message with a one-time reply keyboard.
func (g *Gateway) SendMenu(chatID int64, text string, rows [][]MenuButton) error {
	keyboard := make([][]tgbotapi.KeyboardButton, len(rows))
	for i, row := range rows {
		keyboard[i] = make([]tgbotapi.KeyboardButton, len(row))
		for j, btn := range row {
			keyboard[i][j] = tgbotapi.KeyboardButton{Text: btn.Text}
		}
	}

	_, err := g.api.SendMessage(chatID, text, &tgbotapi.SendMessageOpts{
		ParseMode: "HTML",
		ReplyMarkup: tgbotapi.ReplyKeyboardMarkup{
			Keyboard:        keyboard,
			ResizeKeyboard:  true,
			OneTimeKeyboard: true,
		},
	})
	if err != nil {
		return fmt.Errorf("send menu: %w", err)
	}
	return nil
}

// SendPrompt sends a message and removes any previously shown reply
// keyboard.
func (g *Gateway) SendPrompt(chatID int64, text string) error {
	_, err := g.api.SendMessage(chatID, text, &tgbotapi.SendMessageOpts{
		ParseMode: "HTML",
		ReplyMarkup: tgbotapi.ReplyKeyboardRemove{
			RemoveKeyboard: true,
		},
	})
	if err != nil {
		return fmt.Errorf("send prompt: %w", err)
	}
	return nil
}

// SendInline sends a message with inline buttons carrying callback
// tokens.
func (g *Gateway) SendInline(chatID int64, text string, rows [][]InlineButton) error {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, len(rows))
	for i, row := range rows {
		keyboard[i] = make([]tgbotapi.InlineKeyboardButton, len(row))
		for j, btn := range row {
			keyboard[i][j] = tgbotapi.InlineKeyboardButton{
				Text:         btn.Text,
				CallbackData: btn.Data,
			}
		}
	}

	_, err := g.api.SendMessage(chatID, text, &tgbotapi.SendMessageOpts{
		ParseMode: "HTML",
		ReplyMarkup: tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: keyboard,
		},
	})
	if err != nil {
		return fmt.Errorf("send inline: %w", err)
	}
	return nil
}

// EditText rewrites a previously sent message in place. Sending no
// reply markup drops the inline controls from the original message.
func (g *Gateway) EditText(chatID, messageID int64, text string) error {
	_, _, err := g.api.EditMessageText(text, &tgbotapi.EditMessageTextOpts{
		ChatId:    chatID,
		MessageId: messageID,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("edit message %d in chat %d: %w", messageID, chatID, err)
	}
	return nil
}

// FetchFile resolves a file id to its provider path and downloads the
// raw content.
func (g *Gateway) FetchFile(fileID string) ([]byte, error) {
	file, err := g.api.GetFile(fileID, nil)
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", fileID, err)
	}

	url := fmt.Sprintf("%s%s/%s", fileEndpoint, g.token, file.FilePath)
	resp, err := g.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file content: %w", err)
	}

	g.log.Debug("file fetched",
		slog.String("file_id", fileID),
		slog.Int("size", len(content)),
	)
	return content, nil
}
