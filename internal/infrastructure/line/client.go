package line

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"healthlog/internal/pkg/logger"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// Client wraps the linebot.Client and delivers reminder notifications as push
// messages to a single recipient.
type Client struct {
	*linebot.Client
	log       logger.Logger
	recipient string
	baseURL   string
	postback  func(key string) string

	mu     sync.Mutex
	active map[string]time.Time // notification key -> when it was last shown
}

// Config holds the LINE credentials and the notification target.
type Config struct {
	ChannelSecret      string
	ChannelAccessToken string
	Recipient          string
	// BaseURL is prefixed to deep-link destinations to build the button URI.
	BaseURL string
	// APIEndpoint overrides the LINE API base URL. Tests point it at httptest.
	APIEndpoint string
	// PostbackForKey returns the postback data of the "Taken" button for a
	// notification key, or "" for no button.
	PostbackForKey func(key string) string
}

// NewClient creates a LINE Bot client for the given configuration.
func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	if cfg.ChannelSecret == "" || cfg.ChannelAccessToken == "" {
		return nil, fmt.Errorf("CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN must be set")
	}
	if cfg.Recipient == "" {
		return nil, fmt.Errorf("notification recipient must be set")
	}

	var opts []linebot.ClientOption
	if cfg.APIEndpoint != "" {
		opts = append(opts, linebot.WithEndpointBase(cfg.APIEndpoint))
	}
	bot, err := linebot.New(cfg.ChannelSecret, cfg.ChannelAccessToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE Bot client: %w", err)
	}
	log.Info("Successfully created LINE Bot client.")
	return &Client{
		Client:    bot,
		log:       log,
		recipient: cfg.Recipient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		postback:  cfg.PostbackForKey,
		active:    make(map[string]time.Time),
	}, nil
}

// SendMessages sends one or more messages using the ReplyMessage API.
func (c *Client) SendMessages(ctx context.Context, replyToken string, messages ...linebot.SendingMessage) error {
	_, err := c.ReplyMessage(replyToken, messages...).WithContext(ctx).Do()
	if err != nil {
		return err
	}
	c.log.Debug("Successfully sent reply message.")
	return nil
}

// Recipient is the user ID notifications are pushed to.
func (c *Client) Recipient() string { return c.recipient }

// PushMessages sends one or more messages using the PushMessage API.
func (c *Client) PushMessages(ctx context.Context, to string, messages ...linebot.SendingMessage) error {
	_, err := c.PushMessage(to, messages...).WithContext(ctx).Do()
	if err != nil {
		return err // Return the error for the caller to handle
	}
	c.log.Debug("Successfully sent push message.")
	return nil
}

// ShowNotification pushes a message with a button that opens deepLink. A
// second notification with the same key takes over that key's slot.
func (c *Client) ShowNotification(ctx context.Context, key, title, body, deepLink string) error {
	actions := []linebot.TemplateAction{linebot.NewURIAction("Open", c.deepLinkURI(deepLink))}
	if c.postback != nil {
		if data := c.postback(key); data != "" {
			actions = append(actions, &linebot.PostbackAction{Label: "Taken", Data: data, DisplayText: "Taken"})
		}
	}
	template := linebot.NewButtonsTemplate("", truncate(title, 40), truncate(body, 60), actions...)
	message := linebot.NewTemplateMessage(fmt.Sprintf("%s: %s", title, body), template)

	if err := c.PushMessages(ctx, c.recipient, message); err != nil {
		c.log.Error(fmt.Sprintf("Failed to push notification %s", key), err)
		return err
	}

	c.mu.Lock()
	_, replaced := c.active[key]
	c.active[key] = time.Now()
	c.mu.Unlock()

	if replaced {
		c.log.Info(fmt.Sprintf("Replaced notification %s", key))
	} else {
		c.log.Info(fmt.Sprintf("Showed notification %s", key))
	}
	return nil
}

// CancelNotification clears the slot for key. LINE has no way to retract a
// delivered push message, so only the local slot is released.
func (c *Client) CancelNotification(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.active[key]; ok {
		delete(c.active, key)
		c.log.Debug(fmt.Sprintf("Cleared notification %s", key))
	}
	return nil
}

// IsActive reports whether a notification is currently shown under key.
func (c *Client) IsActive(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.active[key]
	return ok
}

func (c *Client) deepLinkURI(destination string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(destination, "/"))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
