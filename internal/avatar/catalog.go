package avatar

import (
	"net/http"

	"adventure_backend/internal/common"
	"adventure_backend/internal/config"

	"github.com/gin-gonic/gin"
)

// DefaultAvatarURL is assigned to accounts created through the quick registration form.
const DefaultAvatarURL = "https://img.freepik.com/free-vector/man-profile-account-picture_24908-81754.jpg?w=740&q=80"

var builtinPresets = []string{
	"https://img.freepik.com/free-vector/bearded-man-profile_24908-81067.jpg",
	"https://img.freepik.com/free-vector/man-seated-using-laptop_24908-82598.jpg",
	"https://img.freepik.com/free-vector/afro-woman-with-megaphone_24908-81403.jpg",
	"https://img.freepik.com/free-vector/man-seated-using-laptop_24908-82652.jpg",
	"https://img.freepik.com/free-vector/person-using-cellphone-illustration_24908-81884.jpg",
	"https://img.freepik.com/free-vector/redhead-woman-profile-style_24908-81561.jpg",
	"https://img.freepik.com/free-vector/man-profile-account-picture_24908-81754.jpg?w=740&q=80",
	"https://img.freepik.com/free-vector/woman-profile-account-picture_24908-81036.jpg?w=360",
	"https://img.freepik.com/free-vector/woman-head-profile_24908-81681.jpg",
	"https://img.freepik.com/free-vector/hands-lifting-flower-garden_24908-81724.jpg",
	"https://img.freepik.com/free-vector/flower-cute-illustration_24908-82888.jpg",
	"https://img.freepik.com/free-vector/snail-doodle-illustration_24908-82578.jpg",
	"https://img.freepik.com/free-vector/person-using-phone_24908-81116.jpg?w=360",
	"https://img.freepik.com/free-vector/fresh-strawberry-fruit-healthy_24908-81208.jpg",
	"https://img.freepik.com/free-vector/cute-chicken-standing_24908-81287.jpg",
	"https://img.freepik.com/free-vector/cute-rooster-standing_24908-81226.jpg",
	"https://img.freepik.com/premium-vector/blond-man-profile_24908-82724.jpg",
	"https://img.freepik.com/free-vector/man-wearing-sunglasses-profile_24908-82613.jpg?semt=ais_hybrid&w=740&q=80",
	"https://img.freepik.com/free-vector/pink-flamingo-bird_24908-81020.jpg",
}

// Catalog is the fixed set of avatars a user may pick at registration.
type Catalog struct {
	presets  []string
	index    map[string]struct{}
	fallback string
}

// NewCatalog builds the catalog from config, falling back to the built-in presets.
func NewCatalog(cfg *config.Config) *Catalog {
	presets := builtinPresets
	if len(cfg.AvatarPresetURLs) > 0 {
		presets = cfg.AvatarPresetURLs
	}
	fallback := DefaultAvatarURL
	if cfg.DefaultAvatarURL != "" {
		fallback = cfg.DefaultAvatarURL
	}

	c := &Catalog{
		presets:  append([]string(nil), presets...),
		index:    make(map[string]struct{}, len(presets)),
		fallback: fallback,
	}
	for _, p := range c.presets {
		c.index[p] = struct{}{}
	}
	return c
}

// Presets returns a copy of the selectable avatar URLs, in display order.
func (c *Catalog) Presets() []string {
	return append([]string(nil), c.presets...)
}

// Default is the avatar used when the client does not choose one.
func (c *Catalog) Default() string {
	return c.fallback
}

// Contains reports whether url is one of the presets.
func (c *Catalog) Contains(url string) bool {
	_, ok := c.index[url]
	return ok
}

// Handler serves the catalog so clients can render the picker grid.
type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/avatars", h.list)
}

func (h *Handler) list(c *gin.Context) {
	common.RespondSuccess(c, http.StatusOK, "", gin.H{
		"presets": h.catalog.Presets(),
		"default": h.catalog.Default(),
	})
}
