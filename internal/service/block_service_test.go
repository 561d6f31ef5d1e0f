package service

import (
	"testing"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock_SelfAndDuplicate(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	// 자기 자신 차단 불가
	_, err := e.blockSvc.Block(userA.ID, userA.ID, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	reason := "스팸"
	resp, err := e.blockSvc.Block(userA.ID, userB.ID, &reason)
	require.NoError(t, err)
	assert.Equal(t, userB.ID, resp.UserID)
	assert.Equal(t, userB.Nickname, resp.Nickname)

	// 이미 차단한 상대
	_, err = e.blockSvc.Block(userA.ID, userB.ID, nil)
	assert.ErrorIs(t, err, common.ErrAlreadyBlocked)

	// 없는 회원
	_, err = e.blockSvc.Block(userA.ID, 999, nil)
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestBlock_IsDirectional(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	_, err := e.blockSvc.Block(userA.ID, userB.ID, nil)
	require.NoError(t, err)

	blocked, err := e.blockSvc.IsBlocked(userA.ID, userB.ID)
	require.NoError(t, err)
	assert.True(t, blocked)

	// 반대 방향은 차단 아님
	blocked, err = e.blockSvc.IsBlocked(userB.ID, userA.ID)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestUnblock(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	// 차단한 적 없는 상대는 해제할 수 없다
	err := e.blockSvc.Unblock(userA.ID, userB.ID)
	assert.ErrorIs(t, err, common.ErrNotBlocked)

	_, err = e.blockSvc.Block(userA.ID, userB.ID, nil)
	require.NoError(t, err)
	require.NoError(t, e.blockSvc.Unblock(userA.ID, userB.ID))

	blocked, err := e.blockSvc.IsBlocked(userA.ID, userB.ID)
	require.NoError(t, err)
	assert.False(t, blocked)

	// 해제 후 재차단 가능
	_, err = e.blockSvc.Block(userA.ID, userB.ID, nil)
	assert.NoError(t, err)
}

func TestBlockList(t *testing.T) {
	e := newTestEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)
	userC := e.createUser(t, 3, true)

	_, err := e.blockSvc.Block(userA.ID, userB.ID, nil)
	require.NoError(t, err)
	_, err = e.blockSvc.Block(userA.ID, userC.ID, nil)
	require.NoError(t, err)

	list, err := e.blockSvc.List(userA.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	ids := []uint64{list[0].UserID, list[1].UserID}
	assert.ElementsMatch(t, []uint64{userB.ID, userC.ID}, ids)

	// 차단당한 쪽의 목록은 비어 있다
	list, err = e.blockSvc.List(userB.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
