package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMerchantNotFound   = errors.New("merchant not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrPasswordTooLong    = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// SessionClaims are the JWT claims of a merchant session
type SessionClaims struct {
	MerchantID string `json:"merchant_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService handles merchant signup, login and session tokens
type AuthService struct {
	repo       repository.MerchantRepository
	jwtSecret  []byte
	sessionTTL time.Duration
	logger     *logrus.Entry
	now        func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(repo repository.MerchantRepository, jwtSecret string, sessionTTL time.Duration, logger *logrus.Logger) *AuthService {
	return &AuthService{
		repo:       repo,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
		logger:     logger.WithField("component", "auth_service"),
		now:        time.Now,
	}
}

// Signup registers a new active merchant and opens a session for it.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	if len(req.Password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	record := &repository.MerchantRecord{
		Merchant: models.Merchant{
			ID:           uuid.New().String(),
			Name:         strings.TrimSpace(req.Name),
			Email:        repository.NormalizeEmail(req.Email),
			BusinessName: strings.TrimSpace(req.BusinessName),
			Phone:        req.Phone,
			Address:      req.Address,
			IsActive:     true,
			CreatedAt:    s.now().UTC(),
		},
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.WithField("merchant_id", record.ID).Info("Merchant registered")
	return s.session(&record.Merchant)
}

// Login authenticates an active merchant by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	record, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrMerchantNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !record.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.session(&record.Merchant)
}

// GetMerchant returns the merchant profile.
func (s *AuthService) GetMerchant(ctx context.Context, id string) (*models.Merchant, error) {
	record, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrMerchantNotFound) {
		return nil, ErrMerchantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record.Merchant, nil
}

// UpdateMerchant applies a partial profile update.
func (s *AuthService) UpdateMerchant(ctx context.Context, id string, req models.UpdateMerchantRequest) (*models.Merchant, error) {
	record, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrMerchantNotFound) {
		return nil, ErrMerchantNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		record.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		record.Email = repository.NormalizeEmail(*req.Email)
	}
	if req.BusinessName != nil {
		record.BusinessName = strings.TrimSpace(*req.BusinessName)
	}
	if req.Phone != nil {
		record.Phone = *req.Phone
	}
	if req.Address != nil {
		record.Address = *req.Address
	}

	if err := s.repo.Update(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &record.Merchant, nil
}

// IssueToken signs a session token for the merchant.
func (s *AuthService) IssueToken(m *models.Merchant) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.sessionTTL)
	claims := SessionClaims{
		MerchantID: m.ID,
		Email:      m.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   m.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken validates a session token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.MerchantID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) session(m *models.Merchant) (*models.AuthResponse, error) {
	token, expiresAt, err := s.IssueToken(m)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Merchant: m, Token: token, ExpiresAt: expiresAt}, nil
}
