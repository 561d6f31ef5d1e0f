package service

import (
	"fmt"
	"time"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/repository"
)

// BlockService business logic for user blocking.
// 차단은 단방향이다: A가 B를 차단하면 B→A 쪽지만 막힌다.
type BlockService interface {
	Block(callerID, targetID uint64, reason *string) (*domain.BlockResponse, error)
	Unblock(callerID, targetID uint64) error
	IsBlocked(callerID, targetID uint64) (bool, error)
	List(callerID uint64) ([]*domain.BlockResponse, error)
}

type blockService struct {
	blockRepo repository.BlockRepository
	userRepo  repository.UserRepository
}

// NewBlockService creates a new BlockService
func NewBlockService(blockRepo repository.BlockRepository, userRepo repository.UserRepository) BlockService {
	return &blockService{
		blockRepo: blockRepo,
		userRepo:  userRepo,
	}
}

// Block blocks a user
func (s *blockService) Block(callerID, targetID uint64, reason *string) (*domain.BlockResponse, error) {
	if callerID == targetID {
		return nil, fmt.Errorf("%w: 자기 자신을 차단할 수 없습니다", common.ErrInvalidInput)
	}

	target, err := s.userRepo.FindByID(targetID)
	if err != nil {
		return nil, err
	}

	exists, err := s.blockRepo.Exists(callerID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrAlreadyBlocked
	}

	block, err := s.blockRepo.Create(callerID, targetID, reason)
	if err != nil {
		return nil, err
	}

	return &domain.BlockResponse{
		BlockID:   block.ID,
		UserID:    targetID,
		Nickname:  target.Nickname,
		BlockedAt: block.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Unblock removes a block
func (s *blockService) Unblock(callerID, targetID uint64) error {
	return s.blockRepo.Delete(callerID, targetID)
}

// IsBlocked checks whether callerID has blocked targetID
func (s *blockService) IsBlocked(callerID, targetID uint64) (bool, error) {
	return s.blockRepo.Exists(callerID, targetID)
}

// List returns all users blocked by the caller
func (s *blockService) List(callerID uint64) ([]*domain.BlockResponse, error) {
	blocks, err := s.blockRepo.FindByBlocker(callerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.BlockResponse, len(blocks))
	for i, b := range blocks {
		nickname := ""
		if user, err := s.userRepo.FindByID(b.BlockedID); err == nil {
			nickname = user.Nickname
		}
		responses[i] = &domain.BlockResponse{
			BlockID:   b.ID,
			UserID:    b.BlockedID,
			Nickname:  nickname,
			BlockedAt: b.CreatedAt.Format(time.RFC3339),
		}
	}
	return responses, nil
}
