package handler

import (
	"net/http"
	"strconv"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/service"
	"github.com/gin-gonic/gin"
)

// BlockHandler handles block API endpoints
type BlockHandler struct {
	resolver *CallerResolver
	blockSvc service.BlockService
}

// NewBlockHandler creates a new BlockHandler
func NewBlockHandler(resolver *CallerResolver, blockSvc service.BlockService) *BlockHandler {
	return &BlockHandler{resolver: resolver, blockSvc: blockSvc}
}

// Block handles POST /api/v2/blocks
func (h *BlockHandler) Block(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req domain.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	block, err := h.blockSvc.Block(caller.ID, req.UserID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Created(c, block)
}

// Unblock handles DELETE /api/v2/blocks/:user_id
func (h *BlockHandler) Unblock(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 회원 ID", err)
		return
	}

	if err := h.blockSvc.Unblock(caller.ID, targetID); err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, gin.H{"message": "차단 해제 완료"})
}

// IsBlocked handles GET /api/v2/blocks/:user_id
func (h *BlockHandler) IsBlocked(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 회원 ID", err)
		return
	}

	blocked, err := h.blockSvc.IsBlocked(caller.ID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, gin.H{"blocked": blocked})
}

// List handles GET /api/v2/blocks
func (h *BlockHandler) List(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	blocks, err := h.blockSvc.List(caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, blocks)
}
