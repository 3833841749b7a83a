package avatar

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"adventure_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_BuiltinPresets(t *testing.T) {
	c := NewCatalog(&config.Config{})

	assert.Len(t, c.Presets(), 19)
	assert.Equal(t, DefaultAvatarURL, c.Default())
	assert.True(t, c.Contains("https://img.freepik.com/free-vector/pink-flamingo-bird_24908-81020.jpg"))
	assert.False(t, c.Contains("https://evil.example/avatar.png"))
	assert.False(t, c.Contains(""))
}

func TestNewCatalog_ConfigOverrides(t *testing.T) {
	c := NewCatalog(&config.Config{
		AvatarPresetURLs: []string{"https://cdn.example/a.png", "https://cdn.example/b.png"},
		DefaultAvatarURL: "https://cdn.example/default.png",
	})

	assert.Equal(t, []string{"https://cdn.example/a.png", "https://cdn.example/b.png"}, c.Presets())
	assert.Equal(t, "https://cdn.example/default.png", c.Default())
	assert.True(t, c.Contains("https://cdn.example/b.png"))
	assert.False(t, c.Contains(builtinPresets[0]))
}

func TestCatalog_PresetsIsACopy(t *testing.T) {
	c := NewCatalog(&config.Config{})
	p := c.Presets()
	p[0] = "mutated"
	assert.NotEqual(t, "mutated", c.Presets()[0])
}

func TestHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewCatalog(&config.Config{})).RegisterRoutes(router.Group("/api/v1"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/avatars", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Status string `json:"status"`
		Data   struct {
			Presets []string `json:"presets"`
			Default string   `json:"default"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Len(t, body.Data.Presets, 19)
	assert.Equal(t, DefaultAvatarURL, body.Data.Default)
}
