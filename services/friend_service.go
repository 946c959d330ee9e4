package services

import (
	"friendapp-api/apperr"
	"friendapp-api/models"
	"friendapp-api/repositories"
)

// Decision outcomes for a pending friend request.
const (
	OutcomeApprove = "approve"
	OutcomeReject  = "reject"
)

// FriendService enforces the friend-request state machine and its side
// effects on friendships and blocks. Requests move pending -> approved or
// pending -> rejected and never leave a terminal state.
type FriendService struct {
	users *repositories.UserRepository
	rels  *repositories.RelationshipRepository
}

func NewFriendService(users *repositories.UserRepository, rels *repositories.RelationshipRepository) *FriendService {
	return &FriendService{users: users, rels: rels}
}

// Submit creates a pending request from sender to receiver. No friendship
// is created until an admin approves.
func (s *FriendService) Submit(senderID, receiverID, note string) (*models.FriendRequest, error) {
	if _, err := s.users.GetByID(receiverID); err != nil {
		return nil, err
	}

	if senderID == receiverID {
		return nil, apperr.New(apperr.CodeConflict, "cannot send a friend request to yourself")
	}

	blocked, err := s.rels.BlockExists(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, apperr.New(apperr.CodeConflict, "no requests are possible between these users")
	}

	friends, err := s.rels.FriendshipExists(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, apperr.New(apperr.CodeConflict, "this user is already your friend")
	}

	// Only the exact ordered pair counts here; a pending request in the
	// reverse direction does not block submission.
	pending, err := s.rels.PendingRequestExists(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperr.New(apperr.CodeConflict, "you already have a pending request to this user")
	}

	request := &models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Note:       note,
		Status:     models.FriendRequestStatusPending,
	}
	if err := s.rels.CreateRequest(request); err != nil {
		return nil, err
	}

	return s.rels.GetRequest(request.ID)
}

// Decide resolves a pending request. Approval creates the friendship for
// the pair exactly once; a request that is no longer pending is not found.
func (s *FriendService) Decide(requestID uint, outcome string) (*models.FriendRequest, error) {
	if outcome != OutcomeApprove && outcome != OutcomeReject {
		return nil, apperr.New(apperr.CodeInvalidInput, "outcome must be approve or reject")
	}

	request, err := s.rels.GetPendingRequest(requestID)
	if err != nil {
		return nil, err
	}

	if outcome == OutcomeReject {
		decided, err := s.rels.MarkDecided(request.ID, models.FriendRequestStatusRejected)
		if err != nil {
			return nil, err
		}
		if !decided {
			return nil, apperr.New(apperr.CodeNotFound, "friend request not found")
		}
		return s.rels.GetRequest(request.ID)
	}

	err = s.rels.Transaction(func(txr *repositories.RelationshipRepository) error {
		decided, err := txr.MarkDecided(request.ID, models.FriendRequestStatusApproved)
		if err != nil {
			return err
		}
		if !decided {
			return apperr.New(apperr.CodeNotFound, "friend request not found")
		}

		// Friendship rows are written in (sender, receiver) order; the
		// unique index makes the create idempotent under double approval.
		if _, err := txr.CreateFriendship(request.SenderID, request.ReceiverID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.rels.GetRequest(request.ID)
}

// ListPending returns every request still awaiting a decision.
func (s *FriendService) ListPending() ([]models.FriendRequest, error) {
	return s.rels.ListPendingRequests()
}

// ListFriends returns the counterpart of each of the user's friendships.
func (s *FriendService) ListFriends(userID string) ([]models.User, error) {
	friendships, err := s.rels.ListFriendships(userID)
	if err != nil {
		return nil, err
	}

	friends := make([]models.User, 0, len(friendships))
	for _, friendship := range friendships {
		if friendship.User1ID == userID {
			friends = append(friends, friendship.User2)
		} else {
			friends = append(friends, friendship.User1)
		}
	}
	return friends, nil
}

// Block removes any friendship between the pair and records the
// directional block. Pending requests are left untouched.
func (s *FriendService) Block(blockerID, targetID string) (*models.BlockedUser, error) {
	if _, err := s.users.GetByID(targetID); err != nil {
		return nil, err
	}

	if blockerID == targetID {
		return nil, apperr.New(apperr.CodeConflict, "cannot block yourself")
	}

	if err := s.rels.DeleteFriendshipsBetween(blockerID, targetID); err != nil {
		return nil, err
	}

	block, created, err := s.rels.CreateBlock(blockerID, targetID)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperr.New(apperr.CodeConflict, "this user is already blocked")
	}
	return block, nil
}

// Unblock removes one of the caller's own blocks. It does not restore a
// friendship deleted by the block.
func (s *FriendService) Unblock(blockerID string, blockID uint) error {
	block, err := s.rels.GetOwnedBlock(blockID, blockerID)
	if err != nil {
		return err
	}
	return s.rels.DeleteBlock(block)
}

// ListBlocked returns the caller's own blocks, newest first.
func (s *FriendService) ListBlocked(blockerID string) ([]models.BlockedUser, error) {
	return s.rels.ListBlocked(blockerID)
}
