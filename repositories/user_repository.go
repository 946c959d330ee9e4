package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"friendapp-api/apperr"
	"friendapp-api/models"
)

// SearchResultLimit caps directory search results.
const SearchResultLimit = 20

// SearchMinQueryLength is the minimum query length; shorter queries
// return an empty result rather than an error.
const SearchMinQueryLength = 2

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// FindByFirebaseUID returns (nil, nil) when no user carries the UID.
func (r *UserRepository) FindByFirebaseUID(uid string) (*models.User, error) {
	return r.findOne("firebase_uid = ?", uid)
}

// FindByGoogleID returns (nil, nil) when no user carries the Google ID.
func (r *UserRepository) FindByGoogleID(googleID string) (*models.User, error) {
	return r.findOne("google_id = ?", googleID)
}

// FindByEmail returns (nil, nil) when no user has the email.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	if email == "" {
		return nil, nil
	}
	return r.findOne("email = ?", email)
}

func (r *UserRepository) findOne(query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

func (r *UserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (r *UserRepository) Save(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// UniqueHandle returns base if free, otherwise base with the first free
// numeric suffix appended ("ali", "ali1", "ali2", ...).
func (r *UserRepository) UniqueHandle(base string) (string, error) {
	handle := base
	counter := 1

	for {
		var count int64
		if err := r.db.Model(&models.User{}).Where("handle = ?", handle).Count(&count).Error; err != nil {
			return "", apperr.Internal(err)
		}
		if count == 0 {
			return handle, nil
		}
		handle = fmt.Sprintf("%s%d", base, counter)
		counter++
	}
}

// Search does a case-insensitive substring match over first name, last
// name and handle, excluding the searching user.
func (r *UserRepository) Search(query, excludeUserID string) ([]models.User, error) {
	users := []models.User{}
	query = strings.TrimSpace(query)
	if len(query) < SearchMinQueryLength {
		return users, nil
	}

	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.
		Where("id <> ?", excludeUserID).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(handle) LIKE ?", pattern, pattern, pattern).
		Limit(SearchResultLimit).
		Find(&users).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// ListAll returns every user, newest first.
func (r *UserRepository) ListAll() ([]models.User, error) {
	users := []models.User{}
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}
