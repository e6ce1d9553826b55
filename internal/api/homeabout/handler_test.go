package homeabout

import (
	"net/http"
	"testing"

	"estate-cms/internal/api/apitest"
	"estate-cms/internal/domain/content"
	"estate-cms/internal/domain/media/mediatest"
	"estate-cms/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*gin.Engine, string) {
	env, root := apitest.Env(t)
	h := New(env, store.NewMemory[content.HomeAbout]())

	r := gin.New()
	r.POST("/homeabout", h.Create)
	r.GET("/homeabout", h.Get)
	r.PUT("/homeabout/:id", h.Update)
	r.DELETE("/homeabout/:id", h.Delete)
	return r, root
}

func TestHomeAboutSingleton(t *testing.T) {
	r, root := newRouter(t)

	w := apitest.JSON(t, r, http.MethodGet, "/homeabout", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = apitest.JSON(t, r, http.MethodPost, "/homeabout", map[string]any{
		"title": "About us", "image": mediatest.DataURI(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := apitest.Decode(t, w)["data"].(map[string]any)
	id := data["_id"].(string)

	w = apitest.JSON(t, r, http.MethodPost, "/homeabout", map[string]any{"title": "Again"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, apitest.Decode(t, w)["success"])

	w = apitest.JSON(t, r, http.MethodGet, "/homeabout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, apitest.Decode(t, w)["data"].(map[string]any)["_id"])

	// replace image by upload
	old := data["image"].(string)
	w = apitest.Multipart(t, r, http.MethodPut, "/homeabout/"+id,
		map[string]string{"subtitle": "Since 1998"},
		apitest.File{Field: "image", Name: "team.png", Data: mediatest.PNG()},
	)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := apitest.Decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "About us", updated["title"])
	assert.Equal(t, "Since 1998", updated["subtitle"])
	assert.Contains(t, updated["image"], "-team.png")
	assert.False(t, apitest.Stored(root, old))

	w = apitest.JSON(t, r, http.MethodDelete, "/homeabout/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = apitest.JSON(t, r, http.MethodPost, "/homeabout", map[string]any{"title": "Fresh"})
	assert.Equal(t, http.StatusCreated, w.Code)
}
