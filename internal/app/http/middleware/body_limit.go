package middleware

import (
	"net/http"
	"strings"

	"estate-cms/internal/api/shared"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps request bodies. Multipart requests get room for the
// maximum number of maximum-size files on top of the plain limit.
func BodyLimit(limits shared.Limits) gin.HandlerFunc {
	multipartMax := int64(limits.MaxFiles)*limits.MaxFileSize + limits.MaxBodyBytes

	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		max := limits.MaxBodyBytes
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			max = multipartMax
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}
