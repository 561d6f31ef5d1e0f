package service

import (
	"strings"
	"testing"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage_VisibleToBothParticipants(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	convID, err := e.convSvc.Upsert(asCaller(userA), userB.ID)
	require.NoError(t, err)

	msg, err := e.msgSvc.Send(asCaller(userA), convID, &domain.SendMessageRequest{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, userA.ID, msg.SenderID)

	for _, viewer := range []uint64{userA.ID, userB.ID} {
		messages, err := e.msgSvc.List(viewer, convID, 50)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "hello", messages[0].Content)
	}
}

func TestSendMessage_ContentValidation(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	convID, err := e.convSvc.Upsert(asCaller(userA), userB.ID)
	require.NoError(t, err)

	// 빈 내용
	_, err = e.msgSvc.Send(asCaller(userA), convID, &domain.SendMessageRequest{Content: "   "})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	// 2000자 초과
	long := strings.Repeat("가", domain.MaxContentLength+1)
	_, err = e.msgSvc.Send(asCaller(userA), convID, &domain.SendMessageRequest{Content: long})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	// 정확히 2000자는 허용
	exact := strings.Repeat("a", domain.MaxContentLength)
	_, err = e.msgSvc.Send(asCaller(userA), convID, &domain.SendMessageRequest{Content: exact})
	assert.NoError(t, err)
}

func TestSendMessage_NonParticipant(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)
	outsider := e.createUser(t, 3, true)

	convID, err := e.convSvc.Upsert(asCaller(userA), userB.ID)
	require.NoError(t, err)

	_, err = e.msgSvc.Send(asCaller(outsider), convID, &domain.SendMessageRequest{Content: "끼어들기"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSendMessage_InboxDisabledRecipient(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	convID, err := e.convSvc.Upsert(asCaller(userA), userB.ID)
	require.NoError(t, err)

	// 수신자가 쪽지 수신을 끈 경우
	require.NoError(t, e.userRepo.UpdateInboxEnabled(userB.ID, false))

	_, err = e.msgSvc.Send(asCaller(userA), convID, &domain.SendMessageRequest{Content: "안 닿는 쪽지"})
	assert.ErrorIs(t, err, common.ErrInboxDisabled)
}

func TestSendMessage_BlockIsDirectional(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	convID, err := e.convSvc.Upsert(asCaller(userA), userB.ID)
	require.NoError(t, err)

	// A가 B를 차단
	_, err = e.blockSvc.Block(userA.ID, userB.ID, nil)
	require.NoError(t, err)

	// B → A는 차단된다
	_, err = e.msgSvc.Send(asCaller(userB), convID, &domain.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, common.ErrBlocked)

	// A → B는 여전히 가능 (단방향)
	_, err = e.msgSvc.Send(asCaller(userA), convID, &domain.SendMessageRequest{Content: "hi"})
	assert.NoError(t, err)
}

func TestSendMessage_ParentMustBeInSameConversation(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)
	userC := e.createUser(t, 3, true)

	convAB, err := e.convSvc.Upsert(asCaller(userA), userB.ID)
	require.NoError(t, err)
	convAC, err := e.convSvc.Upsert(asCaller(userA), userC.ID)
	require.NoError(t, err)

	parent, err := e.msgSvc.Send(asCaller(userA), convAB, &domain.SendMessageRequest{Content: "원글"})
	require.NoError(t, err)

	// 같은 대화의 답장은 허용
	reply, err := e.msgSvc.Send(asCaller(userB), convAB, &domain.SendMessageRequest{
		Content:         "답장",
		ParentMessageID: &parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, *reply.ParentMessageID)

	// 다른 대화의 쪽지를 부모로 지정하면 거부
	_, err = e.msgSvc.Send(asCaller(userA), convAC, &domain.SendMessageRequest{
		Content:         "잘못된 답장",
		ParentMessageID: &parent.ID,
	})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestDeleteMessage_SenderOnlyAndIdempotent(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	convID, err := e.convSvc.Upsert(asCaller(userA), userB.ID)
	require.NoError(t, err)
	msg, err := e.msgSvc.Send(asCaller(userA), convID, &domain.SendMessageRequest{Content: "지울 쪽지"})
	require.NoError(t, err)

	// 발신자가 아니면 거부
	err = e.msgSvc.Delete(userB.ID, msg.ID)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	// 발신자 삭제는 성공, 반복 호출도 no-op으로 성공
	require.NoError(t, e.msgSvc.Delete(userA.ID, msg.ID))
	require.NoError(t, e.msgSvc.Delete(userA.ID, msg.ID))

	// 발신자에게는 안 보이고 수신자에게는 보인다
	messages, err := e.msgSvc.List(userA.ID, convID, 50)
	require.NoError(t, err)
	assert.Empty(t, messages)

	messages, err = e.msgSvc.List(userB.ID, convID, 50)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestListMessages_NonParticipantGetsEmptyList(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)
	outsider := e.createUser(t, 3, true)

	convID, err := e.convSvc.Upsert(asCaller(userA), userB.ID)
	require.NoError(t, err)
	_, err = e.msgSvc.Send(asCaller(userA), convID, &domain.SendMessageRequest{Content: "비밀"})
	require.NoError(t, err)

	// 대화 존재 여부를 노출하지 않는다
	messages, err := e.msgSvc.List(outsider.ID, convID, 50)
	require.NoError(t, err)
	assert.Empty(t, messages)

	// 없는 대화도 동일
	messages, err = e.msgSvc.List(userA.ID, 999, 50)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestListMessages_ChronologicalWindow(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	convID, err := e.convSvc.Upsert(asCaller(userA), userB.ID)
	require.NoError(t, err)

	contents := []string{"하나", "둘", "셋", "넷", "다섯"}
	for _, content := range contents {
		_, err := e.msgSvc.Send(asCaller(userA), convID, &domain.SendMessageRequest{Content: content})
		require.NoError(t, err)
	}

	// 최근 3개를 시간순으로
	messages, err := e.msgSvc.List(userB.ID, convID, 3)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "셋", messages[0].Content)
	assert.Equal(t, "넷", messages[1].Content)
	assert.Equal(t, "다섯", messages[2].Content)
}

func TestSendMessage_WritesNotification(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	convID, err := e.convSvc.Upsert(asCaller(userA), userB.ID)
	require.NoError(t, err)
	_, err = e.msgSvc.Send(asCaller(userA), convID, &domain.SendMessageRequest{Content: "알림 확인"})
	require.NoError(t, err)

	var notifications []domain.Notification
	require.NoError(t, e.db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, userB.ID, notifications[0].MemberID)
	assert.Equal(t, domain.NotificationTypeMessage, notifications[0].Type)
}
