package handlers

import (
	"net/http"

	"guidedigest-backend/models"

	"github.com/gin-gonic/gin"
)

// MetaHandler serves health and the static catalogs
type MetaHandler struct {
	provider     string
	defaultModel string
	catalog      []models.ModelInfo
	supportMode  string
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(provider, defaultModel, supportMode string, catalog []models.ModelInfo) *MetaHandler {
	return &MetaHandler{
		provider:     provider,
		defaultModel: defaultModel,
		catalog:      catalog,
		supportMode:  supportMode,
	}
}

// Health handles GET /health
func (h *MetaHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": h.provider,
	})
}

// ListModels handles GET /api/models
func (h *MetaHandler) ListModels(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"provider":     h.provider,
		"default":      h.defaultModel,
		"support_mode": h.supportMode,
		"models":       h.catalog,
	})
}

// ListLanguages handles GET /api/languages
func (h *MetaHandler) ListLanguages(c *gin.Context) {
	styles := make([]string, len(models.SummaryStyles))
	for i, s := range models.SummaryStyles {
		styles[i] = string(s)
	}
	respondOK(c, http.StatusOK, gin.H{
		"languages": models.LanguageNames(),
		"default":   models.BaseLanguage,
		"styles":    styles,
	})
}
