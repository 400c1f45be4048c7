package httpkit

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const maxClientMetaLen = 500

// ClientMeta is the request metadata stored alongside public submissions.
type ClientMeta struct {
	IPAddress *string
	UserAgent *string
	Referrer  *string
}

// ClientMetaFrom reads the client IP, user agent and referrer. Blank values
// become nil and long headers are truncated.
func ClientMetaFrom(c *gin.Context) ClientMeta {
	return ClientMeta{
		IPAddress: clip(c.ClientIP()),
		UserAgent: clip(c.Request.UserAgent()),
		Referrer:  clip(c.Request.Referer()),
	}
}

func clip(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if len(value) > maxClientMetaLen {
		value = value[:maxClientMetaLen]
	}
	return &value
}
