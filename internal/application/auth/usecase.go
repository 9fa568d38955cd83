package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer emite el token de sesión con el usuario y su rol como claims.
type TokenIssuer interface {
	Generate(userID, role string) (string, error)
}

// UseCase registro y autenticación de usuarios.
type UseCase struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

func NewUseCase(userRepo repository.UserRepository, tokens TokenIssuer) *UseCase {
	return &UseCase{userRepo: userRepo, tokens: tokens}
}

// Register crea la cuenta y devuelve sesión iniciada. El rol admin no se
// autoasigna: las cuentas nuevas entran como bodeguero salvo que un admin
// las cree por /api/users.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	switch role {
	case "":
		role = entity.RoleBodeguero
	case entity.RoleBodeguero, entity.RoleComprador:
	default:
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return uc.session(u)
}

// Login valida credenciales. Email inexistente y contraseña incorrecta
// devuelven el mismo error para no filtrar qué cuentas existen.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.session(u)
}

func (uc *UseCase) session(u *entity.User) (*dto.LoginResponse, error) {
	token, err := uc.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Username:  u.Username,
			Name:      u.Name,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		},
	}, nil
}
