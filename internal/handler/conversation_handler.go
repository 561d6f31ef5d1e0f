package handler

import (
	"net/http"
	"strconv"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/service"
	"github.com/gin-gonic/gin"
)

// ConversationHandler handles conversation API endpoints
type ConversationHandler struct {
	resolver *CallerResolver
	convSvc  service.ConversationService
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(resolver *CallerResolver, convSvc service.ConversationService) *ConversationHandler {
	return &ConversationHandler{resolver: resolver, convSvc: convSvc}
}

// Upsert handles POST /api/v2/conversations
func (h *ConversationHandler) Upsert(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req domain.UpsertConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	conversationID, err := h.convSvc.Upsert(caller, req.OtherUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, gin.H{"conversation_id": conversationID})
}

// List handles GET /api/v2/conversations
func (h *ConversationHandler) List(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	summaries, err := h.convSvc.List(caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, summaries)
}

// Get handles GET /api/v2/conversations/:id
func (h *ConversationHandler) Get(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 대화 ID", err)
		return
	}

	summary, err := h.convSvc.Get(caller.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if summary == nil {
		// 숨긴 대화와 없는 대화는 동일하게 응답
		common.ErrorResponse(c, http.StatusNotFound, "대화를 찾을 수 없습니다", nil)
		return
	}
	common.Success(c, summary)
}

// Delete handles DELETE /api/v2/conversations/:id
func (h *ConversationHandler) Delete(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 대화 ID", err)
		return
	}

	if err := h.convSvc.Delete(caller.ID, id); err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, gin.H{"message": "삭제 완료"})
}

// ClearInbox handles DELETE /api/v2/conversations
func (h *ConversationHandler) ClearInbox(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	deleted, err := h.convSvc.ClearInbox(caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, gin.H{"deleted_count": deleted})
}
