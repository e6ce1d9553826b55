package homehero

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

func TestHomeHeroCRUD(t *testing.T) {
	env, root := apitest.Env(t)
	h := New(env, store.NewMemory[content.HomeHero]())

	r := gin.New()
	r.POST("/homehero", h.Create)
	r.GET("/homehero", h.List)
	r.GET("/homehero/:id", h.Get)
	r.PUT("/homehero/:id", h.Update)
	r.DELETE("/homehero/:id", h.Delete)

	w := apitest.Multipart(t, r, http.MethodPost, "/homehero",
		map[string]string{"title": "Live high", "button_text": "Explore", "button_link": "/projects"},
		apitest.File{Field: "image", Name: "skyline.png", Data: mediatest.PNG()},
	)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	hero := apitest.Decode(t, w)["data"].(map[string]any)
	id := hero["_id"].(string)
	img := hero["image"].(string)
	assert.Contains(t, img, "/uploads/homehero/")
	assert.Equal(t, "Explore", hero["button_text"])

	w = apitest.JSON(t, r, http.MethodPut, "/homehero/"+id, map[string]any{"subtitle": "New towers"})
	require.Equal(t, http.StatusOK, w.Code)
	hero = apitest.Decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "Live high", hero["title"])
	assert.Equal(t, img, hero["image"])

	w = apitest.JSON(t, r, http.MethodGet, "/homehero", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, apitest.Decode(t, w)["data"], 1)

	w = apitest.JSON(t, r, http.MethodDelete, "/homehero/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, apitest.Stored(root, img))

	w = apitest.JSON(t, r, http.MethodGet, "/homehero/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
