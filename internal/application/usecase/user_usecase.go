package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

// UserUseCase gestión del equipo (staff) dentro de la empresa del token.
type UserUseCase struct {
	repo   repository.UserRepository
	creds  *auth.CredentialStore
	policy *authz.Policy
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia y la tabla rol→permiso.
func NewUserUseCase(repo repository.UserRepository, creds *auth.CredentialStore, policy *authz.Policy) *UserUseCase {
	return &UserUseCase{repo: repo, creds: creds, policy: policy}
}

// List usuarios de la empresa.
func (uc *UserUseCase) List(ctx context.Context, ac authz.Context, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, ac.CompanyID(), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Create da de alta un staff. El rol owner solo existe por registro de empresa.
func (uc *UserUseCase) Create(ctx context.Context, ac authz.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := auth.NormalizeEmail(in.Email)
	first := strings.TrimSpace(in.FirstName)
	if email == "" || first == "" || in.Role == "" {
		return nil, domain.Invalid("email, first_name y role son obligatorios")
	}
	if !auth.ValidEmail(email) {
		return nil, domain.Invalid("email inválido")
	}
	if !entity.ValidRole(in.Role) || in.Role == entity.RoleOwner {
		return nil, domain.Invalid("role inválido %q", in.Role)
	}
	if !uc.policy.CanManageRole(ac.Role(), in.Role) {
		return nil, fmt.Errorf("%w: no puede crear usuarios %s", domain.ErrForbidden, in.Role)
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := uc.creds.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    ac.CompanyID(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     strings.TrimSpace(in.LastName),
		Role:         in.Role,
		Status:       entity.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Activate {
		user.Status = entity.StatusActive
		user.ActivatedAt = &now
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// UpdateStatus cambia el estado de un staff de la misma empresa. Nadie cambia su propio estado.
func (uc *UserUseCase) UpdateStatus(ctx context.Context, ac authz.Context, id string, in dto.UpdateUserStatusRequest) (*dto.UserResponse, error) {
	if !entity.ValidUserStatus(in.Status) {
		return nil, domain.Invalid("status inválido %q", in.Status)
	}
	if !IsID(id) {
		return nil, domain.ErrNotFound
	}
	if id == ac.PrincipalID() {
		return nil, fmt.Errorf("%w: no puede cambiar su propio estado", domain.ErrConflict)
	}
	user, err := uc.repo.GetByCompanyAndID(ctx, ac.CompanyID(), id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if !uc.policy.CanManageRole(ac.Role(), user.Role) {
		return nil, fmt.Errorf("%w: no puede cambiar el estado de un %s", domain.ErrForbidden, user.Role)
	}
	var activatedAt *time.Time
	if in.Status == entity.StatusActive && user.ActivatedAt == nil {
		now := time.Now().UTC()
		activatedAt = &now
		user.ActivatedAt = &now
	}
	if err := uc.repo.UpdateStatus(ctx, ac.CompanyID(), id, in.Status, activatedAt); err != nil {
		return nil, err
	}
	user.Status = in.Status
	return auth.ToUserResponse(user), nil
}
