package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/freshcutsco/meat-delivery-platform/internal/api/middleware"
	"github.com/freshcutsco/meat-delivery-platform/internal/config"
	"github.com/freshcutsco/meat-delivery-platform/internal/errors"
	"github.com/freshcutsco/meat-delivery-platform/internal/metrics"
	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	repository "github.com/freshcutsco/meat-delivery-platform/internal/repositories"
	"github.com/freshcutsco/meat-delivery-platform/pkg/sms"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	RequestCode(ctx context.Context, req *models.RequestCodeRequest) (*models.RequestCodeResponse, error)
	VerifyCode(ctx context.Context, req *models.VerifyCodeRequest) (*models.VerifyCodeResponse, error)
	Profile(ctx context.Context, phone string) (*models.User, error)
}

type authService struct {
	users       repository.UserRepository
	challenges  repository.ChallengeRepository
	rateLimiter repository.RateLimitRepository
	gateway     sms.Gateway
	sanitizer   *bluemonday.Policy
	jwtKey      []byte
	codeTTL     time.Duration
	jwtExpiry   time.Duration
}

func NewAuthService(users repository.UserRepository, challenges repository.ChallengeRepository,
	rateLimiter repository.RateLimitRepository, gateway sms.Gateway, cfg *config.Config) AuthService {

	return &authService{
		users:       users,
		challenges:  challenges,
		rateLimiter: rateLimiter,
		gateway:     gateway,
		sanitizer:   bluemonday.StrictPolicy(),
		jwtKey:      []byte(cfg.Security.JWTKey),
		codeTTL:     cfg.OTP.TTL,
		jwtExpiry:   time.Duration(cfg.Security.JWTExpiryHours) * time.Hour,
	}
}

// RequestCode issues a fresh one-time code for the phone, replacing any
// pending challenge. Only the bcrypt hash of the code is stored.
func (s *authService) RequestCode(ctx context.Context, req *models.RequestCodeRequest) (*models.RequestCodeResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	allowed, _, retryAfter, err := s.rateLimiter.CheckOTPRateLimit(ctx, req.Phone)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to check request rate").WithError(err)
	}

	if !allowed {
		return nil, errors.TooManyRequestsError(
			fmt.Sprintf("Too many code requests. Please retry after %d seconds", retryAfter))
	}

	code, err := generateCode()
	if err != nil {
		return nil, errors.InternalError("Failed to generate verification code").WithError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure verification code").WithError(err)
	}

	now := time.Now()
	challenge := &models.Challenge{
		Phone:     req.Phone,
		CodeHash:  string(hash),
		ExpiresAt: now.Add(s.codeTTL),
		IssuedAt:  now,
	}

	if err := s.challenges.Save(ctx, challenge); err != nil {
		return nil, errors.StorageError("Failed to save verification code").WithError(err)
	}

	message := fmt.Sprintf("Your FreshCuts verification code is %s. It expires in %d minutes.",
		code, int(s.codeTTL.Minutes()))

	if err := s.gateway.Send(ctx, req.Phone, message); err != nil {
		return nil, errors.ThirdPartyError("Failed to deliver verification code").WithError(err)
	}

	metrics.OTPIssued()
	logger.Info("Verification code issued", slog.String("phone", req.Phone))

	return &models.RequestCodeResponse{
		Success:   true,
		Message:   "Verification code sent",
		ExpiresAt: challenge.ExpiresAt,
	}, nil
}

// VerifyCode checks the submitted code against the pending challenge. An
// expired challenge is consumed; a wrong code leaves it intact so the user
// can retry until it expires.
func (s *authService) VerifyCode(ctx context.Context, req *models.VerifyCodeRequest) (*models.VerifyCodeResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	challenge, err := s.challenges.Get(ctx, req.Phone)
	if err != nil {
		return nil, errors.StorageError("Failed to load verification code").WithError(err)
	}

	if challenge == nil {
		return nil, errors.NotFoundError("No verification code requested for this phone number")
	}

	if time.Now().After(challenge.ExpiresAt) {
		if err := s.challenges.Delete(ctx, req.Phone); err != nil {
			logger.Error("Failed to delete expired challenge", slog.String("error", err.Error()))
		}

		return nil, errors.CodeExpiredError("Verification code expired. Please request a new one")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(req.Code)); err != nil {
		logger.Warn("Incorrect verification code submitted", slog.String("phone", req.Phone))

		return nil, errors.CodeInvalidError("Incorrect verification code")
	}

	if err := s.challenges.Delete(ctx, req.Phone); err != nil {
		logger.Error("Failed to delete consumed challenge", slog.String("error", err.Error()))
	}

	user, err := s.upsertUser(ctx, req)
	if err != nil {
		return nil, err
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, errors.InternalError("Failed to issue session token").WithError(err)
	}

	logger.Info("User verified", slog.String("userId", user.ID.String()))

	return &models.VerifyCodeResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: int(s.jwtExpiry.Seconds()),
		User:      user,
	}, nil
}

func (s *authService) Profile(ctx context.Context, phone string) (*models.User, error) {

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return nil, errors.StorageError("Failed to load user").WithError(err)
	}

	if user == nil {
		return nil, errors.NotFoundError("User not found")
	}

	return user, nil
}

func (s *authService) upsertUser(ctx context.Context, req *models.VerifyCodeRequest) (*models.User, error) {

	user, err := s.users.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, errors.StorageError("Failed to load user").WithError(err)
	}

	now := time.Now()

	if user == nil {
		user = &models.User{
			ID:        uuid.New(),
			Phone:     req.Phone,
			Role:      models.DefaultUserRole,
			Addresses: []string{},
			CreatedAt: now,
		}
	}

	if req.Name != "" {
		user.Name = s.sanitizer.Sanitize(req.Name)
	}

	user.UpdatedAt = now

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, errors.StorageError("Failed to save user").WithError(err)
	}

	if err := s.users.SetCurrentUserID(ctx, user.ID); err != nil {
		return nil, errors.StorageError("Failed to save session").WithError(err)
	}

	return user, nil
}

func (s *authService) mintToken(user *models.User) (string, error) {

	now := time.Now()

	claims := &models.Claims{
		UserID: user.ID,
		Phone:  user.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
}

// generateCode draws a uniform 6-digit code from crypto/rand.
func generateCode() (string, error) {

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to read random source: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
