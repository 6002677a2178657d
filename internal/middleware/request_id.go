package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/contextutil"
)

const requestIDHeader = "X-Request-ID"

// RequestID menjamin tiap request punya id: pakai dari header kalau client
// mengirim, generate kalau tidak. Id ini ikut sampai payload outbox supaya
// event Kafka bisa ditelusuri balik ke request HTTP-nya.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(
			contextutil.WithRequestID(c.Request.Context(), rid),
		)
		c.Header(requestIDHeader, rid)

		c.Next()
	}
}
