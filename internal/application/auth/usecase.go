// Package auth implementa registro y login de usuarios del panel admin.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/checkout-api/internal/application/dto"
	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/entity"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
	"github.com/jhoicas/checkout-api/pkg/config"
	"github.com/jhoicas/checkout-api/pkg/jwt"
	"github.com/jhoicas/checkout-api/pkg/logger"
)

// UseCase casos de uso de autenticación admin.
type UseCase struct {
	users repository.UserRepository
	cfg   config.JWTConfig
	log   *logger.Logger
}

// New construye el caso de uso.
func New(users repository.UserRepository, cfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{users: users, cfg: cfg, log: log.Component("auth")}
}

// Register crea un usuario admin y devuelve su token.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.InvalidInput("a valid email is required")
	}
	if len(in.Password) < 8 {
		return nil, domain.InvalidInput("password must have at least 8 characters")
	}
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return nil, domain.InvalidInput("name must have at least 2 characters")
	}

	existing, err := uc.users.GetByEmail(email)
	if err != nil {
		return nil, domain.Internal("load user", err)
	}
	if existing != nil {
		return nil, domain.Conflict("user with email %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.Internal("hash password", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, domain.Internal("create user", err)
	}

	uc.log.Info().Str("user_id", user.ID).Msg("usuario admin registrado")
	return uc.withToken(user)
}

// Login valida credenciales y devuelve un token.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.users.GetByEmail(email)
	if err != nil {
		return nil, domain.Internal("load user", err)
	}
	// Mismo mensaje para usuario inexistente y password errada.
	if user == nil {
		return nil, domain.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.Unauthorized("invalid credentials")
	}
	if user.Status != "active" {
		return nil, domain.Unauthorized("user is disabled")
	}
	return uc.withToken(user)
}

// Profile devuelve los datos del usuario autenticado a partir del id del token.
func (uc *UseCase) Profile(userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, domain.Internal("load user", err)
	}
	// El token puede sobrevivir a la cuenta; sin usuario no hay sesión válida.
	if user == nil {
		return nil, domain.Unauthorized("user no longer exists")
	}
	return &dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}, nil
}

func (uc *UseCase) withToken(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.Role, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, domain.Internal("generate token", err)
	}
	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}, nil
}
