package middleware

import (
	"estate-cms/internal/api/shared"

	"github.com/gin-gonic/gin"
)

// UploadCategory pins the image category for every route in a group.
func UploadCategory(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(shared.UploadCategoryKey, category)
		c.Next()
	}
}
