package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"healthlog/internal/application/dto"
	"healthlog/internal/application/service"
	"healthlog/internal/domain/repository"
	"healthlog/internal/infrastructure/database/sqlite"
	"healthlog/internal/infrastructure/line"
	"healthlog/internal/infrastructure/notification"
	"healthlog/internal/pkg/logger"
	"healthlog/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChannelSecret = "test-secret"

type memoryAlarm struct{}

func (memoryAlarm) RegisterWakeup(string, time.Time, uint) error { return nil }
func (memoryAlarm) CancelWakeup(string) {}

type webhookFixture struct {
	e       *echo.Echo
	store   *repository.Store
	setSvc  service.MedicationSetService
	mu      sync.Mutex
	replies []string
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	f := &webhookFixture{}
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if r.URL.Path == "/v2/bot/message/reply" {
			f.mu.Lock()
			f.replies = append(f.replies, string(raw))
			f.mu.Unlock()
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(api.Close)

	log := logger.NewNop()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "webhook.db"), "silent", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.CloseDB(db) })
	f.store = sqlite.NewStore(db)

	client, err := line.NewClient(line.Config{
		ChannelSecret:      testChannelSecret,
		ChannelAccessToken: "token",
		Recipient:          "U123",
		APIEndpoint:        api.URL,
	}, log)
	require.NoError(t, err)

	sched := service.NewReminderScheduler(memoryAlarm{}, f.store.Reminders, nil, time.UTC, log, metrics.NewUnregistered())
	f.setSvc = service.NewMedicationSetService(f.store, sched, notification.NewLogNotifier(log), nil, log)

	f.e = echo.New()
	f.e.POST("/callback", NewLineHandler(client, f.setSvc, log).HandleWebhook)
	return f
}

func (f *webhookFixture) post(t *testing.T, body string, signed bool) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	if signed {
		mac := hmac.New(sha256.New, []byte(testChannelSecret))
		mac.Write([]byte(body))
		req.Header.Set("X-Line-Signature", base64.StdEncoding.EncodeToString(mac.Sum(nil)))
	} else {
		req.Header.Set("X-Line-Signature", "bogus")
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec.Code
}

func (f *webhookFixture) lastReply(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.replies)
	var body struct {
		Messages []struct {
			Text string `json:"text"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal([]byte(f.replies[len(f.replies)-1]), &body))
	require.NotEmpty(t, body.Messages)
	return body.Messages[0].Text
}

func eventPayload(userID, eventType, extra string) string {
	return fmt.Sprintf(`{"destination":"Ubot","events":[{"type":%q,"replyToken":"rt-1","mode":"active",
		"timestamp":1760421600000,"webhookEventId":"01H","deliveryContext":{"isRedelivery":false},
		"source":{"type":"user","userId":%q}%s}]}`, eventType, userID, extra)
}

func TestLogSetPostbackData(t *testing.T) {
	assert.Equal(t, "action=log_set&set_id=7", LogSetPostbackData(7))
	assert.Equal(t, "action=log_set&set_id=7", PostbackForNotificationKey(service.NotificationKey(7)))
	assert.Empty(t, PostbackForNotificationKey("something-else"))
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	f := newWebhookFixture(t)
	assert.Equal(t, http.StatusBadRequest, f.post(t, eventPayload("U123", "follow", ""), false))
}

func TestWebhookPostbackLogsSet(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()
	set, err := f.setSvc.CreateSet(ctx, dto.SaveMedicationSetRequest{
		Name:  "Morning",
		Items: []dto.MedicationSetItemExport{{Name: "Vitamin D", Dosage: "1000 IU"}},
	})
	require.NoError(t, err)

	extra := fmt.Sprintf(`,"postback":{"data":%q}`, LogSetPostbackData(set.ID))
	require.Equal(t, http.StatusOK, f.post(t, eventPayload("U123", "postback", extra), true))

	logs, err := f.store.SetLogs.FindBySetID(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, int64(1760421600000), logs[0].Timestamp.UnixMilli())
	assert.Equal(t, "Logged Morning.", f.lastReply(t))
}

func TestWebhookPostbackForDeletedSet(t *testing.T) {
	f := newWebhookFixture(t)
	extra := fmt.Sprintf(`,"postback":{"data":%q}`, LogSetPostbackData(99))
	require.Equal(t, http.StatusOK, f.post(t, eventPayload("U123", "postback", extra), true))
	assert.Equal(t, "This medication set no longer exists.", f.lastReply(t))
}

func TestWebhookListsSets(t *testing.T) {
	f := newWebhookFixture(t)
	_, err := f.setSvc.CreateSet(context.Background(), dto.SaveMedicationSetRequest{Name: "Night", Items: []dto.MedicationSetItemExport{{Name: "Melatonin"}}})
	require.NoError(t, err)

	extra := `,"message":{"type":"text","id":"m1","text":"sets"}`
	require.Equal(t, http.StatusOK, f.post(t, eventPayload("U123", "message", extra), true))
	assert.Equal(t, "Medication sets:\n- Night (1 items)", f.lastReply(t))
}

func TestWebhookIgnoresOtherUsers(t *testing.T) {
	f := newWebhookFixture(t)
	extra := fmt.Sprintf(`,"postback":{"data":%q}`, LogSetPostbackData(1))
	require.Equal(t, http.StatusOK, f.post(t, eventPayload("Ustranger", "postback", extra), true))
	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Empty(t, f.replies)
}
