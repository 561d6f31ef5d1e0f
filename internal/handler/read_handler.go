package handler

import (
	"net/http"
	"strconv"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/middleware"
	"github.com/damoang/angple-messaging/internal/service"
	"github.com/gin-gonic/gin"
)

// ReadHandler handles read marker API endpoints.
// 세션 하이드레이션 중의 UI 호출을 에러 없이 받기 위해 OptionalJWTAuth 뒤에
// 붙고, 미인증이면 서비스가 조용히 no-op 한다.
type ReadHandler struct {
	readSvc service.ReadService
}

// NewReadHandler creates a new ReadHandler
func NewReadHandler(readSvc service.ReadService) *ReadHandler {
	return &ReadHandler{readSvc: readSvc}
}

// MarkRead handles POST /api/v2/conversations/:id/read
func (h *ReadHandler) MarkRead(c *gin.Context) {
	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 대화 ID", err)
		return
	}

	if err := h.readSvc.MarkRead(middleware.GetUserID(c), conversationID); err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, gin.H{"message": "읽음 처리 완료"})
}

// MarkAllRead handles POST /api/v2/conversations/read-all
func (h *ReadHandler) MarkAllRead(c *gin.Context) {
	if err := h.readSvc.MarkAllRead(middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, gin.H{"message": "읽음 처리 완료"})
}

// HasUnread handles GET /api/v2/messages/unread
func (h *ReadHandler) HasUnread(c *gin.Context) {
	hasUnread, err := h.readSvc.HasUnread(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, gin.H{"has_unread": hasUnread})
}
