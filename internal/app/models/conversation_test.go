package models

import "testing"

func TestNormalizePair(t *testing.T) {
	a, b := NormalizePair(5, 3)
	if a != 3 || b != 5 {
		t.Fatalf("NormalizePair(5, 3) = (%d, %d)", a, b)
	}
	a, b = NormalizePair(3, 5)
	if a != 3 || b != 5 {
		t.Fatalf("NormalizePair(3, 5) = (%d, %d)", a, b)
	}
}

func TestConversationParticipants(t *testing.T) {
	c := &Conversation{ID: 1, User1ID: 3, User2ID: 5}

	if !c.HasParticipant(3) || !c.HasParticipant(5) {
		t.Fatal("both users must be participants")
	}
	if c.HasParticipant(4) {
		t.Fatal("user 4 must not be a participant")
	}

	if c.OtherParticipant(3) != 5 {
		t.Fatalf("OtherParticipant(3) = %d", c.OtherParticipant(3))
	}
	if c.OtherParticipant(5) != 3 {
		t.Fatalf("OtherParticipant(5) = %d", c.OtherParticipant(5))
	}
}
