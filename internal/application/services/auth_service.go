package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nutritrack/internal/application/command"
	"nutritrack/internal/application/interfaces"
	"nutritrack/internal/application/mapper"
	"nutritrack/internal/domain"
	"nutritrack/internal/domain/entities"
	"nutritrack/internal/domain/repositories"
	"nutritrack/internal/infrastructure"
)

type AuthService struct {
	userRepo    repositories.UserRepository
	jwtService  *infrastructure.JWTService
	rateLimiter *infrastructure.RateLimiter
	events      interfaces.EventPublisher
	logger      *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepository,
	jwtService *infrastructure.JWTService,
	rateLimiter *infrastructure.RateLimiter,
	events interfaces.EventPublisher,
	logger *zap.Logger,
) interfaces.AuthService {
	if events == nil {
		events = infrastructure.NopPublisher{}
	}
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		rateLimiter: rateLimiter,
		events:      events,
		logger:      logger.Named("auth"),
	}
}

// VerifyCredentials and LoginUser share authenticate, so a login succeeds
// exactly when the credentials verify.
func (s *AuthService) VerifyCredentials(ctx context.Context, login, password string) (bool, error) {
	user, err := s.authenticate(ctx, login, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return false, nil
		}
		return false, err
	}
	return user != nil, nil
}

func (s *AuthService) LoginUser(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.LoginUserCommandResult, error) {
	if !s.rateLimiter.Allow(loginCommand.Login) {
		s.publish(ctx, domain.EventLoginFailed, loginCommand.Login)
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.authenticate(ctx, loginCommand.Login, loginCommand.Password)
	if err != nil {
		s.publish(ctx, domain.EventLoginFailed, loginCommand.Login)
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.Id.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	s.rateLimiter.Reset(loginCommand.Login)
	s.publish(ctx, domain.EventLoginSucceeded, user.Email)

	return &command.LoginUserCommandResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtService.TTL()),
		User:      mapper.NewUserResultFromEntity(user),
	}, nil
}

// authenticate returns domain.ErrInvalidCredentials for an unknown login or a
// wrong password, and a wrapped storage error when the lookup itself failed.
func (s *AuthService) authenticate(ctx context.Context, login, password string) (*entities.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error("credential lookup failed", zap.Error(err))
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	if err := user.CheckPassword(password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) publish(ctx context.Context, eventType, login string) {
	event := domain.NewEvent(eventType)
	event.Login = login
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("type", eventType), zap.Error(err))
	}
}
