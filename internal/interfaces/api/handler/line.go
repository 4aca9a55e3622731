package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"healthlog/internal/application/service"
	"healthlog/internal/infrastructure/line"
	appErrors "healthlog/internal/pkg/errors"
	"healthlog/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"
)

const (
	postbackActionLogSet = "log_set"
	howToUse             = `Reminders arrive here when a medication set is due.
Tap "Taken" on a reminder to log the set.

Commands:
  sets - list your medication sets
  help - show this message`
)

// LogSetPostbackData is the postback payload of the "Taken" button for a set.
func LogSetPostbackData(setID uint) string {
	v := url.Values{}
	v.Set("action", postbackActionLogSet)
	v.Set("set_id", strconv.FormatUint(uint64(setID), 10))
	return v.Encode()
}

// PostbackForNotificationKey builds the "Taken" payload for reminder notifications.
func PostbackForNotificationKey(key string) string {
	setID, ok := service.SetIDFromNotificationKey(key)
	if !ok {
		return ""
	}
	return LogSetPostbackData(setID)
}

// LineHandler handles incoming LINE webhook events.
type LineHandler struct {
	lineClient *line.Client
	setService service.MedicationSetService
	log        logger.Logger
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(lineClient *line.Client, setService service.MedicationSetService, log logger.Logger) *LineHandler {
	return &LineHandler{
		lineClient: lineClient,
		setService: setService,
		log:        log,
	}
}

// HandleWebhook is the main entry point for webhook requests.
func (h *LineHandler) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.lineClient.ParseRequest(c.Request())
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			h.log.Warn("Invalid LINE signature received")
			return c.String(http.StatusBadRequest, "Invalid signature")
		}
		h.log.Error("Failed to parse LINE webhook request", err)
		return c.String(http.StatusInternalServerError, "Error parsing request")
	}

	for _, event := range events {
		if event.Source == nil || event.Source.UserID != h.lineClient.Recipient() {
			h.log.Warn(fmt.Sprintf("Ignoring %s event from unknown source", event.Type))
			continue
		}
		h.log.Info(fmt.Sprintf("Processing event type: %s", event.Type))
		switch event.Type {
		case linebot.EventTypeMessage:
			h.handleMessageEvent(ctx, event)
		case linebot.EventTypePostback:
			h.handlePostbackEvent(ctx, event)
		case linebot.EventTypeFollow:
			h.reply(ctx, event.ReplyToken, linebot.NewTextMessage(howToUse))
		default:
			h.log.Debug(fmt.Sprintf("Unhandled event type: %s", event.Type))
		}
	}
	return c.NoContent(http.StatusOK)
}

// handleMessageEvent processes text commands.
func (h *LineHandler) handleMessageEvent(ctx context.Context, event *linebot.Event) {
	message, ok := event.Message.(*linebot.TextMessage)
	if !ok {
		h.log.Debug("Received non-text message, ignoring.")
		return
	}

	switch strings.ToLower(strings.TrimSpace(message.Text)) {
	case "sets", "list":
		h.sendSetList(ctx, event.ReplyToken)
	default:
		h.reply(ctx, event.ReplyToken, linebot.NewTextMessage(howToUse))
	}
}

// handlePostbackEvent processes the "Taken" button of a reminder notification.
func (h *LineHandler) handlePostbackEvent(ctx context.Context, event *linebot.Event) {
	data := event.Postback.Data
	h.log.Info(fmt.Sprintf("Received postback: data=%s", data))

	values, err := url.ParseQuery(data)
	if err != nil || values.Get("action") != postbackActionLogSet {
		h.log.Warn(fmt.Sprintf("Unexpected postback data %q", data))
		h.replyWithError(ctx, event.ReplyToken, "Unknown action.")
		return
	}
	setID, err := strconv.ParseUint(values.Get("set_id"), 10, 64)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Postback has invalid set id %q", values.Get("set_id")))
		h.replyWithError(ctx, event.ReplyToken, "Unknown medication set.")
		return
	}

	// A zero event timestamp logs the set at the current time.
	if _, err := h.setService.LogSet(ctx, uint(setID), event.Timestamp); err != nil {
		if errors.Is(err, appErrors.ErrMedicationSetNotFound) {
			h.replyWithError(ctx, event.ReplyToken, "This medication set no longer exists.")
		} else {
			h.replyWithError(ctx, event.ReplyToken, "Failed to log the medication set.")
		}
		return
	}

	set, err := h.setService.GetSet(ctx, uint(setID))
	name := "the medication set"
	if err == nil {
		name = set.Name
	}
	h.reply(ctx, event.ReplyToken, linebot.NewTextMessage(fmt.Sprintf("Logged %s.", name)))
}

func (h *LineHandler) sendSetList(ctx context.Context, replyToken string) {
	sets, err := h.setService.ListSets(ctx)
	if err != nil {
		h.replyWithError(ctx, replyToken, "Failed to load medication sets.")
		return
	}
	if len(sets) == 0 {
		h.reply(ctx, replyToken, linebot.NewTextMessage("No medication sets yet."))
		return
	}

	var b strings.Builder
	b.WriteString("Medication sets:")
	for _, set := range sets {
		b.WriteString(fmt.Sprintf("\n- %s (%d items)", set.Name, len(set.Items)))
	}
	h.reply(ctx, replyToken, linebot.NewTextMessage(b.String()))
}

func (h *LineHandler) reply(ctx context.Context, replyToken string, messages ...linebot.SendingMessage) {
	if err := h.lineClient.SendMessages(ctx, replyToken, messages...); err != nil {
		h.log.Error("Failed to send reply message", err)
	}
}

// replyWithError sends a generic error message.
func (h *LineHandler) replyWithError(ctx context.Context, replyToken, userMessage string) {
	if err := h.lineClient.SendMessages(ctx, replyToken, linebot.NewTextMessage(userMessage)); err != nil {
		h.log.Error(fmt.Sprintf("Failed to send error reply message: %s", userMessage), err)
	}
}
