package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/blobs"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService is the local sign-in stub: any well-formed e-mail signs in and
// the session survives restarts as a signed token in the repository.
type AuthService interface {
	Login(ctx context.Context, email, name string) (*models.User, error)
	// CurrentUser restores the stored session. It returns (nil, nil) when
	// nobody is signed in; an expired or invalid session is removed.
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

// sessionClaims carries the user profile inside the session token.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Avatar string      `json:"avatar,omitempty"`
	Role   models.Role `json:"role"`
}

type loginInput struct {
	Email string `validate:"required,email"`
	Name  string `validate:"max=64"`
}

// sessionSecretSize is the length of a generated signing key.
const sessionSecretSize = 32

type authService struct {
	repo blobs.Repository
	log  logging.Logger
	ttl  time.Duration
	now  func() time.Time

	mu     sync.Mutex
	secret []byte
}

// NewAuthService signs sessions with secret; they expire after ttl. With an
// empty secret a random one is generated on first use and kept in repo
// under blobs.KeySessionSecret.
func NewAuthService(repo blobs.Repository, log logging.Logger, secret []byte, ttl time.Duration) AuthService {
	a := &authService{
		repo: repo,
		log:  log,
		ttl:  ttl,
		now:  time.Now,
	}
	if len(secret) > 0 {
		a.secret = secret
	}
	return a
}

// signingKey returns the configured secret, else the stored one, creating
// it when absent.
func (a *authService) signingKey(ctx context.Context) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.secret != nil {
		return a.secret, nil
	}

	key, err := a.repo.Get(ctx, blobs.KeySessionSecret)
	if err != nil {
		return nil, fmt.Errorf("load session secret: %w", err)
	}
	if len(key) == 0 {
		key = common.GenerateRandByteArray(sessionSecretSize)
		if err := a.repo.Set(ctx, blobs.KeySessionSecret, key); err != nil {
			return nil, fmt.Errorf("save session secret: %w", err)
		}
		a.log.Info(ctx, "session secret generated")
	}

	a.secret = key
	return key, nil
}

// UserIDForEmail derives a stable user id from an e-mail address.
func UserIDForEmail(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+normalizeEmail(email))).String()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *authService) Login(ctx context.Context, email, name string) (*models.User, error) {
	in := loginInput{Email: normalizeEmail(email), Name: strings.TrimSpace(name)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Name == "" {
		in.Name, _, _ = strings.Cut(in.Email, "@")
	}

	now := a.now().UTC().Truncate(time.Second)
	user := &models.User{
		ID:        UserIDForEmail(in.Email),
		Email:     in.Email,
		Name:      in.Name,
		Role:      models.RoleFree,
		CreatedAt: now,
	}

	key, err := a.signingKey(ctx)
	if err != nil {
		return nil, err
	}

	token, err := a.generateToken(key, user, now)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	if err := a.repo.Set(ctx, blobs.KeySession, []byte(token)); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	a.log.Info(ctx, "signed in", "user_id", user.ID)
	return user, nil
}

func (a *authService) generateToken(key []byte, u *models.User, now time.Time) (string, error) {
	jti, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		Email:  u.Email,
		Name:   u.Name,
		Avatar: u.Avatar,
		Role:   u.Role,
	})
	return token.SignedString(key)
}

// parseToken maps jwt failures to common.ErrTokenExpired or
// common.ErrInvalidToken.
func (a *authService) parseToken(key []byte, tokenString string) (*models.User, error) {
	claims := &sessionClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, common.ErrTokenExpired
	case err != nil:
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	case !token.Valid || claims.Subject == "":
		return nil, common.ErrInvalidToken
	}

	u := &models.User{
		ID:     claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Avatar: claims.Avatar,
		Role:   claims.Role,
	}
	if claims.IssuedAt != nil {
		u.CreatedAt = claims.IssuedAt.UTC()
	}
	return u, nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := a.repo.Get(ctx, blobs.KeySession)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	key, err := a.signingKey(ctx)
	if err != nil {
		return nil, err
	}

	u, err := a.parseToken(key, string(raw))
	if err != nil {
		a.log.Warn(ctx, "discarding stored session", "error", err)
		if err := a.repo.Delete(ctx, blobs.KeySession); err != nil {
			return nil, fmt.Errorf("clear session: %w", err)
		}
		return nil, nil
	}
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.repo.Delete(ctx, blobs.KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.log.Info(ctx, "signed out")
	return nil
}
