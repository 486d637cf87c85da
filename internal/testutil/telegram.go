package testutil

import (
	"encoding/json"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

// TestBotToken signs init data produced by SignedInitData.
const TestBotToken = "123456:test-bot-token"

// SignedInitData returns a Mini App init data string for the given Telegram account,
// signed with TestBotToken.
func SignedInitData(t *testing.T, telegramID int64, username string) string {
	t.Helper()

	user, err := json.Marshal(map[string]interface{}{
		"id":         telegramID,
		"first_name": username,
		"username":   username,
	})
	require.NoError(t, err)

	authDate := time.Now()
	payload := map[string]string{"user": string(user)}

	q := url.Values{}
	q.Set("user", string(user))
	q.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	q.Set("hash", initdata.Sign(payload, TestBotToken, authDate))
	return q.Encode()
}
