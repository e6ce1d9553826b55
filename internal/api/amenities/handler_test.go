package amenities

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
	h := New(env, store.NewMemory[content.Amenity]())

	r := gin.New()
	r.POST("/amenities", h.Create)
	r.GET("/amenities", h.List)
	r.GET("/amenities/:id", h.Get)
	r.PUT("/amenities/:id", h.Update)
	r.DELETE("/amenities/:id", h.Delete)
	return r, root
}

func TestAmenityRequiresTitle(t *testing.T) {
	r, root := newRouter(t)

	w := apitest.JSON(t, r, http.MethodPost, "/amenities", map[string]any{"image": mediatest.DataURI()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title is required", apitest.Decode(t, w)["error"])

	// rejected before any image was written
	assert.NoDirExists(t, root+"/amenities")
}

func TestAmenityCreateUpdateDelete(t *testing.T) {
	r, root := newRouter(t)

	w := apitest.JSON(t, r, http.MethodPost, "/amenities", map[string]any{
		"title": "Pool", "image": mediatest.DataURI(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := apitest.Decode(t, w)
	id := created["_id"].(string)
	img := created["image"].(string)
	assert.Contains(t, img, "/uploads/amenities/")

	// same URL back: kept, not deleted
	w = apitest.JSON(t, r, http.MethodPut, "/amenities/"+id, map[string]any{"title": "Lap pool", "image": img})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, img, apitest.Decode(t, w)["image"])
	assert.True(t, apitest.Stored(root, img))

	w = apitest.JSON(t, r, http.MethodGet, "/amenities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lap pool")

	w = apitest.JSON(t, r, http.MethodDelete, "/amenities/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, apitest.Stored(root, img))

	w = apitest.JSON(t, r, http.MethodGet, "/amenities/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
