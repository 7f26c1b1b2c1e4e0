package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/repositories"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/pkg/auth"
	"github.com/yigit/facultyhub/internal/pkg/validation"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo      *repositories.UserRepository
	studentRepo   *repositories.StudentRepository
	professorRepo *repositories.ProfessorRepository
	jwtService    *auth.JWTService
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	professorRepo *repositories.ProfessorRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		studentRepo:   studentRepo,
		professorRepo: professorRepo,
		jwtService:    jwtService,
		logger:        logger,
	}
}

// Register creates an account without a student or professor profile.
// Profiles are created through the student and professor endpoints.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	if err := ensureEmailFree(ctx, s.userRepo, req.Email); err != nil {
		return nil, err
	}

	user, err := newAccount(req.Email, req.Password, req.FirstName, req.LastName, role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().Str("email", user.Email).Str("role", string(role)).Msg("User registered")
	return s.generateAuthResponse(user)
}

// Login authenticates a user. Unknown emails and wrong passwords give the
// same error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.Active() {
		return nil, apperrors.ErrAccountDisabled
	}

	user, err = s.userRepo.Update(ctx, user.ID, func(u *models.User) error {
		now := models.DateNow()
		u.LastLogin = &now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("recording last login: %w", err)
	}

	s.logger.Debug().Str("userId", user.ID.String()).Msg("User logged in")
	return s.generateAuthResponse(user)
}

// ChangePassword replaces the password after checking the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID models.ObjectID, req *dto.ChangePasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "current password is incorrect").WithField("currentPassword")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	_, err = s.userRepo.Update(ctx, userID, func(u *models.User) error {
		u.Password = hash
		return nil
	})
	return err
}

// Profile returns the user together with the profile matching its role
func (s *AuthService) Profile(ctx context.Context, userID models.ObjectID) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProfileResponse{User: user.Summary()}

	switch user.Role {
	case models.RoleStudent:
		student, err := s.studentRepo.GetByUser(ctx, userID)
		if err != nil {
			if !apperrors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
			s.logger.Warn().Str("userId", userID.String()).Msg("Student account without profile")
			break
		}
		resp.Student = student
	case models.RoleProfessor:
		professor, err := s.professorRepo.GetByUser(ctx, userID)
		if err != nil {
			if !apperrors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
			s.logger.Warn().Str("userId", userID.String()).Msg("Professor account without profile")
			break
		}
		resp.Professor = professor
	}
	return resp, nil
}

// generateAuthResponse issues a token for a user
func (s *AuthService) generateAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	accessToken, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: user.Summary(),
	}, nil
}
