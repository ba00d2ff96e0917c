package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"

	"rentio/pkg/errors"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

type FirebaseAuthClient struct {
	client *auth.Client
	apiKey string
	httpc  *http.Client
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
		apiKey: apiKey,
		httpc:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", errors.Conflict("Email already in use")
		}
		return "", errors.Internal("Failed to create account", err)
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

// SignInWithEmailPassword exchanges credentials for an ID token via the
// Identity Toolkit REST endpoint; the Admin SDK has no password sign-in.
func (f *FirebaseAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})

	url := fmt.Sprintf("%s?key=%s", signInEndpoint, f.apiKey)
	resp, err := f.httpc.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", errors.Internal("Failed to reach authentication provider", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return "", errors.Internal("Sign-in failed", err)
		}
		return "", mapSignInError(errResp.Error.Message)
	}

	var result struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Internal("Failed to parse sign-in response", err)
	}

	return result.IDToken, nil
}

// mapSignInError translates Identity Toolkit error codes into the
// application failure taxonomy. Codes sometimes carry a detail suffix
// ("TOO_MANY_ATTEMPTS_TRY_LATER : ..."), so match on the leading token.
func mapSignInError(code string) error {
	switch {
	case strings.HasPrefix(code, "EMAIL_NOT_FOUND"):
		return errors.NotFound("Account", nil)
	case strings.HasPrefix(code, "INVALID_PASSWORD"),
		strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"):
		return errors.Unauthorized("Invalid credentials", nil)
	case strings.HasPrefix(code, "INVALID_EMAIL"):
		return errors.BadRequest("Malformed email address", nil)
	case strings.HasPrefix(code, "USER_DISABLED"):
		return errors.Forbidden("Account is disabled", nil)
	case strings.HasPrefix(code, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return errors.TooManyRequests("Too many attempts, try again later")
	default:
		return errors.Internal("Sign-in failed: "+code, nil)
	}
}
