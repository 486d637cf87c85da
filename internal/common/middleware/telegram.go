package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/logger"
)

const (
	HeaderInitData  = "init_data"
	keyTelegramUser = "telegram_user"
	tmaPrefix       = "tma "
)

// TelegramInitData validates Mini App init data from the "init_data" header (or
// "Authorization: tma <data>") against the bot token and stores the Telegram user.
func TelegramInitData(botToken string, expIn time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderInitData)
		if raw == "" {
			if h := c.GetHeader("Authorization"); len(h) > len(tmaPrefix) && strings.EqualFold(h[:len(tmaPrefix)], tmaPrefix) {
				raw = strings.TrimSpace(h[len(tmaPrefix):])
			}
		}
		if raw == "" {
			_ = c.Error(apperrors.NewUnauthorizedError(apperrors.ErrCodeUnauthorized, "telegram init data required"))
			c.Abort()
			return
		}

		if err := initdata.Validate(raw, botToken, expIn); err != nil {
			logger.Debug().Err(err).Msg("Init data validation failed")
			_ = c.Error(apperrors.NewUnauthorizedError(apperrors.ErrCodeUnauthorized, "invalid init data"))
			c.Abort()
			return
		}

		parsed, err := initdata.Parse(raw)
		if err != nil {
			_ = c.Error(apperrors.NewValidationError(HeaderInitData, "cannot parse init data"))
			c.Abort()
			return
		}

		c.Set(keyTelegramUser, parsed.User)
		c.Next()
	}
}

func TelegramUser(c *gin.Context) (initdata.User, bool) {
	v, ok := c.Get(keyTelegramUser)
	if !ok {
		return initdata.User{}, false
	}
	u, ok := v.(initdata.User)
	return u, ok
}
