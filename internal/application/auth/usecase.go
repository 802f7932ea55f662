package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/techinventory-api/internal/application/dto"
	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/repository"
	"github.com/jhoicas/techinventory-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase login y gestión de usuarios del panel.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg, now: time.Now}
}

// Login verifica usuario/password, registra el último acceso y genera el JWT con el rol.
// Usuario inexistente y password incorrecto devuelven el mismo domain.ErrUnauthorized.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(in.Username)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	now := uc.now()
	if err := uc.userRepo.UpdateLastAccess(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastAccessAt = &now

	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: ToUserResponse(user)}, nil
}

// CreateUser hashea el password con bcrypt y persiste. Devuelve domain.ErrDuplicate si el username existe.
func (uc *UseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	user, err := NewUser(in, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ListUsers lista los usuarios sin hash.
func (uc *UseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out, nil
}

// Me devuelve el usuario autenticado.
func (uc *UseCase) Me(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// EnsureAdmin crea el usuario admin si aún no existe. created=false si ya estaba.
func (uc *UseCase) EnsureAdmin(ctx context.Context, username, password string) (created bool, err error) {
	existing, err := uc.userRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{
		Username: username,
		Password: password,
		Name:     "Administrador",
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// NewUser valida la entrada y construye la entidad con el password hasheado.
// Lo comparten CreateUser y el comando de seed.
func NewUser(in dto.CreateUserRequest, now time.Time) (*entity.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: contraseña demasiado larga", domain.ErrInvalidInput)
		}
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = username
	}
	return &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Name:         name,
		Role:         in.Role,
		PasswordHash: string(hash),
		Avatar:       in.Avatar,
		CreatedAt:    now,
	}, nil
}

// ToUserResponse mapea la entidad sin exponer el hash.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Name,
		Role:         u.Role,
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
		LastAccessAt: u.LastAccessAt,
	}
}
