package handlers

import "github.com/gin-gonic/gin"

// Handlers groups every HTTP handler the API serves
type Handlers struct {
	Meta    *MetaHandler
	Session *SessionHandler
	Summary *SummaryHandler
	Chat    *ChatHandler
	Export  *ExportHandler
}

// RegisterRoutes mounts the API on r
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", h.Meta.Health)

	api := r.Group("/api")
	{
		api.GET("/models", h.Meta.ListModels)
		api.GET("/languages", h.Meta.ListLanguages)
		api.POST("/detect-language", h.Chat.DetectLanguage)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", h.Session.CreateSession)
			sessions.GET("/:id", h.Session.GetSession)
			sessions.DELETE("/:id", h.Session.DeleteSession)

			sessions.POST("/:id/summary", h.Summary.SummarizeText)
			sessions.POST("/:id/summary/upload", h.Summary.SummarizeUpload)
			sessions.POST("/:id/summary/sample", h.Summary.SummarizeSample)

			sessions.POST("/:id/questions", h.Chat.AskQuestion)
			sessions.DELETE("/:id/history", h.Session.ClearHistory)
			sessions.GET("/:id/suggestions", h.Session.GetSuggestions)
			sessions.GET("/:id/tickets", h.Session.ListTickets)

			sessions.GET("/:id/export/summary", h.Export.DownloadSummary)
			sessions.GET("/:id/export/transcript", h.Export.DownloadTranscript)
			sessions.POST("/:id/exports", h.Export.ArchiveExport)
		}

		api.GET("/exports/*path", h.Export.GetExport)
		api.DELETE("/exports/*path", h.Export.DeleteExport)
	}
}
