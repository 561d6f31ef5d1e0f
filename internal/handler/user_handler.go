package handler

import (
	"net/http"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/repository"
	"github.com/gin-gonic/gin"
)

// UserHandler handles inbox preference endpoints
type UserHandler struct {
	resolver *CallerResolver
	userRepo repository.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(resolver *CallerResolver, userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{resolver: resolver, userRepo: userRepo}
}

// UpdateInbox handles PUT /api/v2/users/me/inbox
func (h *UserHandler) UpdateInbox(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	if err := h.userRepo.UpdateInboxEnabled(caller.ID, *req.Enabled); err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, gin.H{"inbox_enabled": *req.Enabled})
}
