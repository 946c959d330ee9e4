package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friendapp-api/apperr"
	"friendapp-api/models"
	"friendapp-api/testutil"
)

func TestCreateFriendship_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRelationshipRepository(db)
	a := testutil.CreateUser(t, db, "ali")
	b := testutil.CreateUser(t, db, "ayse")

	created, err := repo.CreateFriendship(a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, created)

	// Same ordered pair again: the unique index absorbs it.
	created, err = repo.CreateFriendship(a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFriendshipExists_BothOrderings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRelationshipRepository(db)
	a := testutil.CreateUser(t, db, "ali")
	b := testutil.CreateUser(t, db, "ayse")

	_, err := repo.CreateFriendship(a.ID, b.ID)
	require.NoError(t, err)

	exists, err := repo.FriendshipExists(a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.FriendshipExists(b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, exists, "lookup must not depend on storage ordering")
}

func TestDeleteFriendshipsBetween_RemovesEitherOrdering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRelationshipRepository(db)
	a := testutil.CreateUser(t, db, "ali")
	b := testutil.CreateUser(t, db, "ayse")

	_, err := repo.CreateFriendship(b.ID, a.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteFriendshipsBetween(a.ID, b.ID))

	exists, err := repo.FriendshipExists(a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateBlock_OrderedPairUniqueness(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRelationshipRepository(db)
	a := testutil.CreateUser(t, db, "ali")
	b := testutil.CreateUser(t, db, "ayse")

	block, created, err := repo.CreateBlock(a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, block)

	_, created, err = repo.CreateBlock(a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, created, "same ordered pair must not be created twice")

	// The reverse direction is a distinct row.
	_, created, err = repo.CreateBlock(b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestBlockExists_SymmetricLookup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRelationshipRepository(db)
	a := testutil.CreateUser(t, db, "ali")
	b := testutil.CreateUser(t, db, "ayse")

	_, _, err := repo.CreateBlock(a.ID, b.ID)
	require.NoError(t, err)

	exists, err := repo.BlockExists(b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, exists, "a directional block must be visible from both sides")
}

func TestCreateRequest_DuplicatePairIsConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRelationshipRepository(db)
	a := testutil.CreateUser(t, db, "ali")
	b := testutil.CreateUser(t, db, "ayse")

	first := &models.FriendRequest{SenderID: a.ID, ReceiverID: b.ID, Status: models.FriendRequestStatusPending}
	require.NoError(t, repo.CreateRequest(first))

	second := &models.FriendRequest{SenderID: a.ID, ReceiverID: b.ID, Status: models.FriendRequestStatusPending}
	err := repo.CreateRequest(second)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeConflict, apperr.Code(err))
}

func TestMarkDecided_OnlyOnceFromPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRelationshipRepository(db)
	a := testutil.CreateUser(t, db, "ali")
	b := testutil.CreateUser(t, db, "ayse")

	request := &models.FriendRequest{SenderID: a.ID, ReceiverID: b.ID, Status: models.FriendRequestStatusPending}
	require.NoError(t, repo.CreateRequest(request))

	decided, err := repo.MarkDecided(request.ID, models.FriendRequestStatusApproved)
	require.NoError(t, err)
	assert.True(t, decided)

	decided, err = repo.MarkDecided(request.ID, models.FriendRequestStatusRejected)
	require.NoError(t, err)
	assert.False(t, decided, "a decided request must not transition again")
}

func TestGetPendingRequest_DecidedIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRelationshipRepository(db)
	a := testutil.CreateUser(t, db, "ali")
	b := testutil.CreateUser(t, db, "ayse")

	request := &models.FriendRequest{SenderID: a.ID, ReceiverID: b.ID, Status: models.FriendRequestStatusPending}
	require.NoError(t, repo.CreateRequest(request))

	_, err := repo.MarkDecided(request.ID, models.FriendRequestStatusRejected)
	require.NoError(t, err)

	_, err = repo.GetPendingRequest(request.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.Code(err))
}

func TestGetOwnedBlock_OwnershipRequired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewRelationshipRepository(db)
	a := testutil.CreateUser(t, db, "ali")
	b := testutil.CreateUser(t, db, "ayse")

	block, _, err := repo.CreateBlock(a.ID, b.ID)
	require.NoError(t, err)

	_, err = repo.GetOwnedBlock(block.ID, b.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.Code(err), "foreign blocks must not be visible")

	owned, err := repo.GetOwnedBlock(block.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, block.ID, owned.ID)
}
