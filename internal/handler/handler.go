package handler

import (
	"errors"
	"net/http"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/middleware"
	"github.com/damoang/angple-messaging/internal/repository"
	"github.com/gin-gonic/gin"
)

// CallerResolver resolves the authenticated caller's directory record once
// per request. 이후의 서비스 호출은 CallerContext를 그대로 전달받는다.
type CallerResolver struct {
	userRepo repository.UserRepository
}

// NewCallerResolver creates a new CallerResolver
func NewCallerResolver(userRepo repository.UserRepository) *CallerResolver {
	return &CallerResolver{userRepo: userRepo}
}

// Resolve returns the caller context, or ErrUnauthenticated without a session
func (r *CallerResolver) Resolve(c *gin.Context) (*domain.CallerContext, error) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return nil, common.ErrUnauthenticated
	}
	user, err := r.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return &domain.CallerContext{
		ID:           user.ID,
		Nickname:     user.Nickname,
		InboxEnabled: user.InboxEnabled,
	}, nil
}

// respondError maps service errors onto the response envelope
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		common.ErrorResponse(c, http.StatusUnauthorized, "로그인이 필요합니다", nil)
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, common.ErrUserNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "회원을 찾을 수 없습니다", nil)
	case errors.Is(err, common.ErrConversationNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "대화를 찾을 수 없습니다", nil)
	case errors.Is(err, common.ErrMessageNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "쪽지를 찾을 수 없습니다", nil)
	case errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "찾을 수 없습니다", nil)
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, "권한이 없습니다", nil)
	case errors.Is(err, common.ErrInboxDisabled):
		common.ErrorResponse(c, http.StatusForbidden, "쪽지를 받지 않는 회원입니다", nil)
	case errors.Is(err, common.ErrBlocked):
		common.ErrorResponse(c, http.StatusForbidden, "쪽지를 보낼 수 없는 회원입니다", nil)
	case errors.Is(err, common.ErrAlreadyBlocked):
		common.ErrorResponse(c, http.StatusConflict, "이미 차단한 회원입니다", nil)
	case errors.Is(err, common.ErrNotBlocked):
		common.ErrorResponse(c, http.StatusConflict, "차단 기록을 찾을 수 없습니다", nil)
	case errors.Is(err, common.ErrRateLimitedHourly):
		common.ErrorResponse(c, http.StatusTooManyRequests, "같은 회원에게 보낼 수 있는 시간당 쪽지 한도를 넘었습니다", err)
	case errors.Is(err, common.ErrRateLimitedDaily):
		common.ErrorResponse(c, http.StatusTooManyRequests, "하루 쪽지 전송 한도를 넘었습니다", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "요청 처리에 실패했습니다", err)
	}
}
