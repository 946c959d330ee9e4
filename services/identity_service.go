package services

import (
	"github.com/google/uuid"

	"friendapp-api/apperr"
	"friendapp-api/models"
	"friendapp-api/repositories"
)

// IdentityService maps verified external identities to local user rows,
// creating them on first login. The Firebase path is the current scheme;
// the Google path survives for accounts created under the old flow and is
// only wired up when enabled in configuration.
type IdentityService struct {
	users    *repositories.UserRepository
	firebase TokenVerifier
	google   TokenVerifier
}

func NewIdentityService(users *repositories.UserRepository, firebase, google TokenVerifier) *IdentityService {
	return &IdentityService{
		users:    users,
		firebase: firebase,
		google:   google,
	}
}

// GoogleEnabled reports whether the legacy sign-in path is configured.
func (s *IdentityService) GoogleEnabled() bool {
	return s.google != nil
}

// ResolveFirebase verifies the token and returns the matching user,
// creating one when neither the Firebase UID nor the claimed email is
// known. Reports whether the user was created by this call.
func (s *IdentityService) ResolveFirebase(idToken string) (*models.User, bool, error) {
	claims, err := s.firebase.Verify(idToken)
	if err != nil {
		return nil, false, apperr.Wrap(err, apperr.CodeUpstreamAuth, "invalid identity token")
	}

	user, err := s.users.FindByFirebaseUID(claims.Subject)
	if err != nil {
		return nil, false, err
	}

	if user == nil {
		// Rows created under the old identity scheme, or provisioned
		// directly, are adopted by email and bound to the new UID.
		user, err = s.users.FindByEmail(claims.Email)
		if err != nil {
			return nil, false, err
		}
		if user != nil {
			uid := claims.Subject
			user.FirebaseUID = &uid
		}
	}

	if user == nil {
		user, err = s.createUser(claims, func(u *models.User) {
			uid := claims.Subject
			u.FirebaseUID = &uid
		})
		if err != nil {
			return nil, false, err
		}
		return user, true, nil
	}

	if err := s.refreshProfile(user, claims); err != nil {
		return nil, false, err
	}
	return user, false, nil
}

// ResolveGoogle is the legacy path, keyed on the Google subject id.
func (s *IdentityService) ResolveGoogle(idToken string) (*models.User, bool, error) {
	if s.google == nil {
		return nil, false, apperr.New(apperr.CodeForbidden, "google sign-in is disabled")
	}

	claims, err := s.google.Verify(idToken)
	if err != nil {
		return nil, false, apperr.Wrap(err, apperr.CodeUpstreamAuth, "invalid identity token")
	}

	user, err := s.users.FindByGoogleID(claims.Subject)
	if err != nil {
		return nil, false, err
	}

	if user == nil {
		user, err = s.users.FindByEmail(claims.Email)
		if err != nil {
			return nil, false, err
		}
		if user != nil {
			googleID := claims.Subject
			user.GoogleID = &googleID
		}
	}

	if user == nil {
		user, err = s.createUser(claims, func(u *models.User) {
			googleID := claims.Subject
			u.GoogleID = &googleID
		})
		if err != nil {
			return nil, false, err
		}
		return user, true, nil
	}

	if err := s.refreshProfile(user, claims); err != nil {
		return nil, false, err
	}
	return user, false, nil
}

func (s *IdentityService) createUser(claims *IdentityClaims, bind func(*models.User)) (*models.User, error) {
	base := models.FallbackHandle(claims.Subject)
	if claims.Email != "" {
		base = models.HandleFromEmail(claims.Email)
	}
	handle, err := s.users.UniqueHandle(base)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:            uuid.New().String(),
		FirstName:     claims.GivenName,
		LastName:      claims.FamilyName,
		Handle:        handle,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
	}
	if claims.Picture != "" {
		picture := claims.Picture
		user.ProfilePhoto = &picture
	}
	bind(user)

	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// refreshProfile updates mutable profile fields on repeat login: name
// parts only when previously empty, photo whenever the claim carries one,
// the verified flag always.
func (s *IdentityService) refreshProfile(user *models.User, claims *IdentityClaims) error {
	if user.FirstName == "" {
		user.FirstName = claims.GivenName
	}
	if user.LastName == "" {
		user.LastName = claims.FamilyName
	}
	if claims.Picture != "" {
		picture := claims.Picture
		user.ProfilePhoto = &picture
	}
	user.EmailVerified = claims.EmailVerified

	return s.users.Save(user)
}
