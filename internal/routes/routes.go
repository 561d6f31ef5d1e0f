package routes

import (
	"github.com/damoang/angple-messaging/internal/handler"
	"github.com/damoang/angple-messaging/internal/middleware"
	"github.com/damoang/angple-messaging/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Handlers groups the API handlers for route registration
type Handlers struct {
	Conversation *handler.ConversationHandler
	Message      *handler.MessageHandler
	Read         *handler.ReadHandler
	Block        *handler.BlockHandler
	Report       *handler.ReportHandler
	User         *handler.UserHandler
}

// Setup configures the messaging API routes
func Setup(router *gin.Engine, h *Handlers, jwtManager *jwt.Manager) {
	api := router.Group("/api/v2")
	auth := middleware.JWTAuth(jwtManager)
	optionalAuth := middleware.OptionalJWTAuth(jwtManager)

	// Conversations
	conversations := api.Group("/conversations")
	conversations.POST("", auth, h.Conversation.Upsert)
	conversations.GET("", auth, h.Conversation.List)
	conversations.DELETE("", auth, h.Conversation.ClearInbox)
	conversations.GET("/:id", auth, h.Conversation.Get)
	conversations.DELETE("/:id", auth, h.Conversation.Delete)

	// Messages (nested under conversations)
	conversations.GET("/:id/messages", auth, h.Message.List)
	conversations.POST("/:id/messages", auth, h.Message.Send)
	api.DELETE("/messages/:id", auth, h.Message.Delete)

	// Read markers (인증 전 UI 호출 허용)
	conversations.POST("/:id/read", optionalAuth, h.Read.MarkRead)
	conversations.POST("/read-all", optionalAuth, h.Read.MarkAllRead)
	api.GET("/messages/unread", optionalAuth, h.Read.HasUnread)

	// Blocks
	blocks := api.Group("/blocks")
	blocks.Use(auth)
	blocks.POST("", h.Block.Block)
	blocks.GET("", h.Block.List)
	blocks.GET("/:user_id", h.Block.IsBlocked)
	blocks.DELETE("/:user_id", h.Block.Unblock)

	// Reports
	reports := api.Group("/reports")
	reports.Use(auth)
	reports.POST("", h.Report.Create)
	reports.GET("/my", h.Report.GetMyReports)

	// Inbox preference
	api.PUT("/users/me/inbox", auth, h.User.UpdateInbox)
}
