package handler

import (
	"net/http"
	"strconv"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/service"
	"github.com/gin-gonic/gin"
)

// MessageHandler handles message API endpoints
type MessageHandler struct {
	resolver *CallerResolver
	msgSvc   service.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(resolver *CallerResolver, msgSvc service.MessageService) *MessageHandler {
	return &MessageHandler{resolver: resolver, msgSvc: msgSvc}
}

// Send handles POST /api/v2/conversations/:id/messages
func (h *MessageHandler) Send(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 대화 ID", err)
		return
	}

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	msg, err := h.msgSvc.Send(caller, conversationID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Created(c, msg)
}

// List handles GET /api/v2/conversations/:id/messages
func (h *MessageHandler) List(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 대화 ID", err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	messages, err := h.msgSvc.List(caller.ID, conversationID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, messages)
}

// Delete handles DELETE /api/v2/messages/:id
func (h *MessageHandler) Delete(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 쪽지 ID", err)
		return
	}

	if err := h.msgSvc.Delete(caller.ID, messageID); err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, gin.H{"message": "삭제 완료"})
}
