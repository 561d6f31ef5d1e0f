package domain

import "testing"

func TestCanonicalPair(t *testing.T) {
	cases := []struct {
		a, b         uint64
		wantA, wantB uint64
	}{
		{1, 2, 1, 2},
		{2, 1, 1, 2},
		{99, 3, 3, 99},
	}
	for _, tc := range cases {
		gotA, gotB := CanonicalPair(tc.a, tc.b)
		if gotA != tc.wantA || gotB != tc.wantB {
			t.Errorf("CanonicalPair(%d, %d) = (%d, %d), want (%d, %d)",
				tc.a, tc.b, gotA, gotB, tc.wantA, tc.wantB)
		}
	}
}

func TestConversationParticipants(t *testing.T) {
	conv := &Conversation{UserAID: 1, UserBID: 2}

	if got := conv.OtherUserID(1); got != 2 {
		t.Errorf("OtherUserID(1) = %d, want 2", got)
	}
	if got := conv.OtherUserID(2); got != 1 {
		t.Errorf("OtherUserID(2) = %d, want 1", got)
	}

	if !conv.HasParticipant(1) || !conv.HasParticipant(2) {
		t.Error("expected both users to be participants")
	}
	if conv.HasParticipant(3) {
		t.Error("expected user 3 to be a non-participant")
	}
}
