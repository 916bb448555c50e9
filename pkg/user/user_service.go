package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/logging"
	"foodgram/internal/utils/mailing"
	"foodgram/pkg/jwt"
	"foodgram/pkg/personalization"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const resetPasswordTTL = 15 * time.Minute

type (
	UserService interface {
		Register(ctx context.Context, req domain.UserRegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.UserLoginRequest) (domain.TokenResponse, error)
		Logout(ctx context.Context, token string) error
		Me(ctx context.Context, viewer domain.Viewer) (domain.UserResponse, error)
		GetUser(ctx context.Context, viewer domain.Viewer, id uuid.UUID) (domain.UserResponse, error)
		GetUsers(ctx context.Context, viewer domain.Viewer, page, limit int) ([]domain.UserResponse, int64, error)
		SetPassword(ctx context.Context, viewer domain.Viewer, req domain.SetPasswordRequest) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		resolver       personalization.Resolver
		mailer         mailing.Mailer
		appURL         string
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	resolver personalization.Resolver,
	mailer mailing.Mailer,
	appURL string,
) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		resolver:       resolver,
		mailer:         mailer,
		appURL:         strings.TrimRight(appURL, "/"),
	}
}

// hashPassword reports passwords over bcrypt's byte limit as a validation error on field.
func hashPassword(field, password string) (string, error) {
	if len(password) > domain.MaxPasswordBytes {
		return "", domain.ErrPasswordTooLong(field)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrHashPasswordFailure, err)
	}
	return string(hash), nil
}

func (s *userService) Register(ctx context.Context, req domain.UserRegisterRequest) (domain.UserResponse, error) {
	if strings.EqualFold(req.Username, domain.ForbiddenUsername) {
		return domain.UserResponse{}, domain.ErrForbiddenUsername
	}

	hash, err := hashPassword("password", req.Password)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := entities.User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
	}
	if err := s.userRepository.RegisterUser(ctx, &user); err != nil {
		return domain.UserResponse{}, err
	}

	return ToUserResponse(&user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.UserLoginRequest) (domain.TokenResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TokenResponse{}, domain.ErrInvalidCredentials
		}
		return domain.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.TokenResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String())
	if err != nil {
		return domain.TokenResponse{}, err
	}
	return domain.TokenResponse{AuthToken: token}, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrTokenNotFound
	}
	return s.jwtService.RevokeToken(ctx, token)
}

func (s *userService) Me(ctx context.Context, viewer domain.Viewer) (domain.UserResponse, error) {
	if viewer.IsAnonymous() {
		return domain.UserResponse{}, domain.ErrAnonymous
	}
	user, err := s.userRepository.GetUserByID(ctx, viewer.ID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user, false), nil
}

func (s *userService) GetUser(ctx context.Context, viewer domain.Viewer, id uuid.UUID) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return domain.UserResponse{}, err
	}

	subscribed, err := s.resolver.IsSubscribed(ctx, viewer, user.ID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user, subscribed), nil
}

func (s *userService) GetUsers(ctx context.Context, viewer domain.Viewer, page, limit int) ([]domain.UserResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	subscribed, err := s.resolver.SubscribedAuthors(ctx, viewer, ids)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, ToUserResponse(u, subscribed[u.ID]))
	}
	return res, count, nil
}

func (s *userService) SetPassword(ctx context.Context, viewer domain.Viewer, req domain.SetPasswordRequest) error {
	if viewer.IsAnonymous() {
		return domain.ErrAnonymous
	}
	user, err := s.userRepository.GetUserByID(ctx, viewer.ID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}

	hash, err := hashPassword("new_password", req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, user.ID, hash)
}

// ForgotPassword mails a reset link. Unknown emails succeed silently.
func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenResetPassword(user.ID.String(), resetPasswordTTL)
	if err != nil {
		return err
	}

	body, err := mailing.RenderResetPassword(mailing.ResetPasswordData{
		Username:     user.Username,
		Link:         s.appURL + "/reset-password?token=" + token,
		ValidMinutes: int(resetPasswordTTL.Minutes()),
	})
	if err != nil {
		return err
	}

	if err := s.mailer.SendMail(user.Email, "Foodgram password reset", body); err != nil {
		logging.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to send password reset email")
		return err
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	userID, err := s.jwtService.GetUserIDByResetToken(ctx, req.Token)
	if err != nil {
		return domain.ErrResetTokenInvalid
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrResetTokenInvalid
	}

	hash, err := hashPassword("new_password", req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepository.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	if err := s.jwtService.RevokeResetToken(ctx, req.Token); err != nil {
		logging.Error().Err(err).Str("user_id", userID).Msg("failed to revoke reset token")
	}
	return nil
}
