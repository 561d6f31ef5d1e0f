package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/repository"
	"gorm.io/gorm"
)

// ConversationService business logic for conversation threads
type ConversationService interface {
	Upsert(caller *domain.CallerContext, otherUserID uint64) (uint64, error)
	Get(callerID, conversationID uint64) (*domain.ConversationSummary, error)
	List(callerID uint64) ([]*domain.ConversationSummary, error)
	Delete(callerID, conversationID uint64) error
	ClearInbox(callerID uint64) (int, error)
}

type conversationService struct {
	db       *gorm.DB
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository
	readRepo repository.ReadMarkerRepository
}

// NewConversationService creates a new ConversationService
func NewConversationService(
	db *gorm.DB,
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	readRepo repository.ReadMarkerRepository,
) ConversationService {
	return &conversationService{
		db:       db,
		convRepo: convRepo,
		msgRepo:  msgRepo,
		userRepo: userRepo,
		readRepo: readRepo,
	}
}

// Upsert finds or creates the conversation with another user.
// 양쪽 모두에게 다시 보이도록 기존 삭제 마커가 있으면 제거한다.
func (s *conversationService) Upsert(caller *domain.CallerContext, otherUserID uint64) (uint64, error) {
	// 자기 자신과의 쌍은 userA < userB 정규화가 성립하지 않는다
	if caller.ID == otherUserID {
		return 0, fmt.Errorf("%w: 자기 자신과는 대화를 시작할 수 없습니다", common.ErrInvalidInput)
	}

	other, err := s.userRepo.FindByID(otherUserID)
	if err != nil {
		return 0, err
	}
	if !other.InboxEnabled {
		return 0, common.ErrInboxDisabled
	}

	userA, userB := domain.CanonicalPair(caller.ID, otherUserID)
	var conversationID uint64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.convRepo.WithTx(tx)
		conv, err := repo.FindByPair(userA, userB)
		if err != nil {
			return err
		}
		if conv == nil {
			conv = &domain.Conversation{
				UserAID:        userA,
				UserBID:        userB,
				LastActivityAt: time.Now(),
			}
			if err := repo.Create(conv); err != nil {
				// 동시 첫 대화 경합: 유니크 인덱스에 걸리면 이긴 쪽을 재조회
				if !isDuplicateKeyError(err) {
					return err
				}
				conv, err = repo.FindByPair(userA, userB)
				if err != nil {
					return err
				}
				if conv == nil {
					return common.ErrConversationNotFound
				}
			}
		}

		if err := repo.RemoveDeletion(conv.ID, caller.ID); err != nil {
			return err
		}
		if err := repo.RemoveDeletion(conv.ID, otherUserID); err != nil {
			return err
		}
		conversationID = conv.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return conversationID, nil
}

// Get returns a conversation summary, or nil when the conversation does not
// exist, the caller is not a participant, or the caller has hidden it.
// 숨긴 대화는 존재하지 않는 대화와 구분되지 않는다.
func (s *conversationService) Get(callerID, conversationID uint64) (*domain.ConversationSummary, error) {
	conv, err := s.convRepo.FindByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil || !conv.HasParticipant(callerID) {
		return nil, nil
	}
	hidden, err := s.convRepo.DeletionExists(conversationID, callerID)
	if err != nil {
		return nil, err
	}
	if hidden {
		return nil, nil
	}
	return s.buildSummary(conv, callerID)
}

// List returns the caller's visible conversations, most recent activity first
func (s *conversationService) List(callerID uint64) ([]*domain.ConversationSummary, error) {
	convs, err := s.convRepo.FindVisibleByUser(callerID)
	if err != nil {
		return nil, err
	}
	summaries := make([]*domain.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary, err := s.buildSummary(conv, callerID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Delete hides the conversation from the caller and soft-deletes its
// messages for the caller. 상대방에게는 아무 영향이 없다.
func (s *conversationService) Delete(callerID, conversationID uint64) error {
	conv, err := s.convRepo.FindByID(conversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return common.ErrConversationNotFound
	}
	if !conv.HasParticipant(callerID) {
		return common.ErrUnauthorized
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.convRepo.WithTx(tx).CreateDeletion(conversationID, callerID); err != nil {
			return err
		}
		return s.msgRepo.WithTx(tx).SoftDeleteConversationForUser(conversationID, callerID)
	})
}

// ClearInbox deletes every currently-visible conversation of the caller
func (s *conversationService) ClearInbox(callerID uint64) (int, error) {
	convs, err := s.convRepo.FindVisibleByUser(callerID)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, conv := range convs {
		if err := s.Delete(callerID, conv.ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// buildSummary assembles the response item for one conversation
func (s *conversationService) buildSummary(conv *domain.Conversation, callerID uint64) (*domain.ConversationSummary, error) {
	summary := &domain.ConversationSummary{
		ID:             conv.ID,
		LastActivityAt: conv.LastActivityAt.Format(time.RFC3339),
	}

	otherID := conv.OtherUserID(callerID)
	if other, err := s.userRepo.FindByID(otherID); err == nil {
		summary.OtherUser = other.ToSummary()
	} else if !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}

	if conv.LastMessageID != nil {
		msg, err := s.msgRepo.FindByID(*conv.LastMessageID)
		if err == nil {
			// 내가 지운 메시지는 미리보기에서도 빠진다
			deleted, derr := s.msgRepo.DeletionExists(msg.ID, callerID)
			if derr != nil {
				return nil, derr
			}
			if !deleted {
				summary.LastMessage = msg.ToResponse()
			}
		} else if !errors.Is(err, common.ErrMessageNotFound) {
			return nil, err
		}
	}

	lastRead := time.Time{}
	marker, err := s.readRepo.Find(conv.ID, callerID)
	if err != nil {
		return nil, err
	}
	if marker != nil {
		lastRead = marker.LastReadAt
	}
	unread, err := s.msgRepo.CountUnread(conv.ID, callerID, lastRead)
	if err != nil {
		return nil, err
	}
	summary.UnreadCount = unread
	return summary, nil
}

// isDuplicateKeyError detects unique constraint violations across drivers
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}
