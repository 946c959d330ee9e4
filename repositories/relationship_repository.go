package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"friendapp-api/apperr"
	"friendapp-api/models"
)

// RelationshipRepository owns the three relations between users: friend
// requests, blocks and friendships. Friendships and blocks are stored as
// the ordered pair written at creation time; the Between helpers check
// both orderings so callers never build raw ordered queries. Get-or-create
// operations rely on the composite unique indexes for race safety: under
// concurrent identical inserts the database collapses them to one row and
// the loser observes "already exists".
type RelationshipRepository struct {
	db *gorm.DB
}

func NewRelationshipRepository(db *gorm.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// Transaction runs fn against a repository bound to a single transaction.
func (r *RelationshipRepository) Transaction(fn func(txr *RelationshipRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&RelationshipRepository{db: tx})
	})
}

// ---- Friend requests ----

// PendingRequestExists checks the exact ordered (sender, receiver) pair.
// A pending request in the reverse direction does not count.
func (r *RelationshipRepository) PendingRequestExists(senderID, receiverID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.FriendRequestStatusPending).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

func (r *RelationshipRepository) CreateRequest(request *models.FriendRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.CodeConflict, "a friend request for this pair already exists")
		}
		return apperr.Internal(err)
	}
	return nil
}

// GetPendingRequest loads a request only while it is pending; decided
// requests are not found, which is what enforces the terminal states.
func (r *RelationshipRepository) GetPendingRequest(id uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("id = ? AND status = ?", id, models.FriendRequestStatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "friend request not found")
		}
		return nil, apperr.Internal(err)
	}
	return &request, nil
}

// MarkDecided transitions a request out of pending. Returns false when the
// request was not pending anymore, so a concurrent double-decide loses.
func (r *RelationshipRepository) MarkDecided(id uint, status models.FriendRequestStatus) (bool, error) {
	result := r.db.Model(&models.FriendRequest{}).
		Where("id = ? AND status = ?", id, models.FriendRequestStatusPending).
		Update("status", status)
	if result.Error != nil {
		return false, apperr.Internal(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *RelationshipRepository) GetRequest(id uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.db.Preload("Sender").Preload("Receiver").First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "friend request not found")
		}
		return nil, apperr.Internal(err)
	}
	return &request, nil
}

func (r *RelationshipRepository) ListPendingRequests() ([]models.FriendRequest, error) {
	requests := []models.FriendRequest{}
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("status = ?", models.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return requests, nil
}

// ---- Friendships ----

func (r *RelationshipRepository) FriendshipExists(userAID, userBID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Friendship{}).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			userAID, userBID, userBID, userAID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

// CreateFriendship inserts the pair in the given order, doing nothing if
// that ordered pair already exists. Returns whether a row was created.
func (r *RelationshipRepository) CreateFriendship(user1ID, user2ID string) (bool, error) {
	friendship := models.Friendship{User1ID: user1ID, User2ID: user2ID}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&friendship)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, apperr.Internal(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *RelationshipRepository) DeleteFriendshipsBetween(userAID, userBID string) error {
	err := r.db.
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			userAID, userBID, userBID, userAID).
		Delete(&models.Friendship{}).Error
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (r *RelationshipRepository) ListFriendships(userID string) ([]models.Friendship, error) {
	friendships := []models.Friendship{}
	err := r.db.Preload("User1").Preload("User2").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return friendships, nil
}

// ---- Blocks ----

// BlockExists is true when a block exists in either direction.
func (r *RelationshipRepository) BlockExists(userAID, userBID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlockedUser{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userAID, userBID, userBID, userAID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

// CreateBlock inserts the directional block row, returning whether it was
// created or the ordered pair already existed.
func (r *RelationshipRepository) CreateBlock(blockerID, blockedID string) (*models.BlockedUser, bool, error) {
	block := models.BlockedUser{BlockerID: blockerID, BlockedID: blockedID}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&block)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, false, nil
		}
		return nil, false, apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return &block, true, nil
}

// GetOwnedBlock loads a block row only when it belongs to the blocker.
func (r *RelationshipRepository) GetOwnedBlock(id uint, blockerID string) (*models.BlockedUser, error) {
	var block models.BlockedUser
	err := r.db.Where("id = ? AND blocker_id = ?", id, blockerID).First(&block).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "block not found")
		}
		return nil, apperr.Internal(err)
	}
	return &block, nil
}

func (r *RelationshipRepository) DeleteBlock(block *models.BlockedUser) error {
	if err := r.db.Delete(block).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (r *RelationshipRepository) ListBlocked(blockerID string) ([]models.BlockedUser, error) {
	blocks := []models.BlockedUser{}
	err := r.db.Preload("Blocked").
		Where("blocker_id = ?", blockerID).
		Order("created_at DESC").
		Find(&blocks).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return blocks, nil
}
