package auth

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// dummyLoginHash keeps the unknown-user path doing the same bcrypt work as a
// wrong password, so login timing does not reveal which accounts exist.
var dummyLoginHash, _ = bcrypt.GenerateFromPassword([]byte("login-filler"), bcrypt.DefaultCost)

type Repo interface {
	ByUsername(ctx context.Context, username string) (*Admin, error)
	ByID(ctx context.Context, id string) (*Admin, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateProfile(ctx context.Context, id, username, email string) (*Admin, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

type Service struct {
	repo   Repo
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
	now    func() time.Time
}

func NewService(repo Repo, secret string, ttl time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, secret: []byte(secret), ttl: ttl, log: log, now: time.Now}
}

// Login verifies the password hash and issues a signed token. A missing
// admin and a wrong password report the same error.
func (s *Service) Login(ctx context.Context, username, password string) (*Admin, string, error) {
	a, err := s.repo.ByUsername(ctx, username)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyLoginHash, []byte(password))
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, a.ID, s.now()); err != nil {
		s.log.Warn("update last login failed", zap.String("admin_id", a.ID), zap.Error(err))
	}

	token, err := CreateAccessToken(s.secret, a, s.ttl)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("admin logged in", zap.String("admin_id", a.ID), zap.String("username", a.Username))
	return a, token, nil
}

func (s *Service) Authenticate(token string) (*Claims, error) {
	return ParseValidate(s.secret, token)
}

func (s *Service) Profile(ctx context.Context, id string) (*Admin, error) {
	return s.repo.ByID(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id, username, email string) (*Admin, error) {
	if username == "" || email == "" {
		return nil, ErrInvalidProfile
	}
	return s.repo.UpdateProfile(ctx, id, username, email)
}

// ChangePassword re-verifies the current password before accepting the new
// one.
func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	if len(next) < minPasswordLen {
		return ErrPasswordTooShort
	}

	a, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, id, string(hash))
}
