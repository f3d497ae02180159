package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/parth10-05/verita/internal/config"
	"github.com/parth10-05/verita/internal/mail"
	"github.com/parth10-05/verita/internal/middleware"
	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/repository"
	"github.com/parth10-05/verita/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenTTL = time.Hour
	otpTTL   = time.Hour
)

type AuthService struct {
	userRepo repository.UserRepository
	mailer   mail.Mailer
	config   *config.Config
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password_strength"`
}

// inputValidator checks service inputs against their validate tags.
var inputValidator = validation.NewValidator()

func NewAuthService(userRepo repository.UserRepository, mailer mail.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   mailer,
		config:   cfg,
	}
}

// Register creates a new account with the user role.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if err := inputValidator.Struct(in); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", models.NewConflictError("An account with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	if _, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil {
		return nil, "", models.NewConflictError("This username is taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// Login authenticates by email and password and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", models.NewUnauthorizedError("Invalid credentials")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", models.NewUnauthorizedError("Invalid credentials")
	}
	if user.IsBanned {
		return nil, "", models.NewForbiddenError("This account is banned")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// Me resolves the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return user, nil
}

// ForgotPassword issues a 6-digit OTP, stores it with an expiry on the user
// row and mails it. A missing account returns success so the endpoint does
// not leak which emails exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return models.NewInternalError(err)
	}

	if err := s.userRepo.SetResetOTP(ctx, user.ID, otp, time.Now().Add(otpTTL)); err != nil {
		return err
	}

	body := fmt.Sprintf("Your password reset code is %s. It expires in one hour.", otp)
	if err := s.mailer.Send(user.Email, "Password reset code", body); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to send reset mail", "error", err)
		return models.NewInternalError(err)
	}
	return nil
}

// VerifyOTP checks the code against the stored one. The code survives
// verification so the subsequent ResetPassword call can present it again.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewValidationError("Invalid or expired code")
		}
		return err
	}
	return s.checkOTP(user, otp)
}

// ResetPassword sets a new password when the OTP matches, then clears it.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewValidationError("Invalid or expired code")
		}
		return err
	}
	if err := s.checkOTP(user, otp); err != nil {
		return err
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"password_hash": string(hashed),
	}); err != nil {
		return err
	}
	return s.userRepo.ClearResetOTP(ctx, user.ID)
}

func (s *AuthService) checkOTP(user *models.User, otp string) error {
	if user.ResetOTP == nil || user.ResetOTPExpiresAt == nil {
		return models.NewValidationError("Invalid or expired code")
	}
	if time.Now().After(*user.ResetOTPExpiresAt) {
		return models.NewValidationError("Invalid or expired code")
	}
	if *user.ResetOTP != otp {
		return models.NewValidationError("Invalid or expired code")
	}
	return nil
}

// GenerateToken creates a signed JWT for the user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"role":     string(user.Role),
		"iss":      "verita-api",
		"aud":      "verita-client",
		"exp":      now.Add(tokenTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// generateOTP returns a random 6-digit code, zero padded.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
