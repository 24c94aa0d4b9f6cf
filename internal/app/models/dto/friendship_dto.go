package dto

// FriendActionRequest represents a friendship transition request. The target
// user is addressed by email, matching the client's user cards.
type FriendActionRequest struct {
	Action string `json:"action" binding:"required,oneof=add accept decline cancel remove"`
	Email  string `json:"email" binding:"required,email"`
}

// FriendshipStatusResponse reports the relation between the caller and the
// queried user. ActionUserEmail identifies the requester so the client can
// offer "cancel" to the initiator and "accept/decline" to the recipient.
type FriendshipStatusResponse struct {
	Status          string `json:"status"` // not_friends | pending | accepted
	ActionUserEmail string `json:"action_user_email,omitempty"`
}
