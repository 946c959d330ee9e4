package models

import "time"

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusApproved FriendRequestStatus = "approved"
	FriendRequestStatusRejected FriendRequestStatus = "rejected"
)

// FriendRequest holds a sender's request towards a receiver. At most one
// row may exist per ordered (sender, receiver) pair. pending is the only
// state a request can be decided from.
type FriendRequest struct {
	ID         uint                `json:"id" gorm:"primaryKey"`
	SenderID   string              `json:"sender_id" gorm:"not null;size:191;uniqueIndex:idx_friend_requests_pair"`
	ReceiverID string              `json:"receiver_id" gorm:"not null;size:191;uniqueIndex:idx_friend_requests_pair"`
	Note       string              `json:"note" gorm:"size:1000"`
	Status     FriendRequestStatus `json:"status" gorm:"not null;default:'pending';size:20"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`

	Sender   User `json:"sender" gorm:"foreignKey:SenderID"`
	Receiver User `json:"receiver" gorm:"foreignKey:ReceiverID"`
}

// BlockedUser is a directional block. Any block between two users, in
// either direction, prevents new friend requests between them.
type BlockedUser struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BlockerID string    `json:"blocker_id" gorm:"not null;size:191;uniqueIndex:idx_blocked_users_pair"`
	BlockedID string    `json:"blocked_id" gorm:"not null;size:191;uniqueIndex:idx_blocked_users_pair"`
	CreatedAt time.Time `json:"created_at"`

	Blocker User `json:"blocker" gorm:"foreignKey:BlockerID"`
	Blocked User `json:"blocked" gorm:"foreignKey:BlockedID"`
}

// Friendship is conceptually symmetric but stored as the ordered pair
// written at creation time, always (sender, receiver) of the approved
// request. Lookups must check both orderings.
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	User1ID   string    `json:"user1_id" gorm:"not null;size:191;uniqueIndex:idx_friendships_pair"`
	User2ID   string    `json:"user2_id" gorm:"not null;size:191;uniqueIndex:idx_friendships_pair"`
	CreatedAt time.Time `json:"created_at"`

	User1 User `json:"user1" gorm:"foreignKey:User1ID"`
	User2 User `json:"user2" gorm:"foreignKey:User2ID"`
}
