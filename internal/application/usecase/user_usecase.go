package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/ports"
	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

// UserUseCase perfil del usuario y administración de planes.
type UserUseCase struct {
	repo  repository.UserRepository
	clock ports.Clock
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, clock ports.Clock) *UserUseCase {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &UserUseCase{repo: repo, clock: clock}
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}

// UpdateProfile actualiza nombre, email, teléfono y empresa del propio usuario.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, id string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	setIf(&user.Name, in.Name)
	setIf(&user.Phone, in.Phone)
	setIf(&user.Company, in.Company)
	user.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}

// ListForAdmin lista todos los usuarios con los totales por plan.
func (uc *UserUseCase) ListForAdmin(ctx context.Context) (*dto.AdminUserListResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.AdminUserListResponse{Items: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		out.Items = append(out.Items, dto.ToUserResponse(u))
		if u.IsPremium() {
			out.Premium++
		} else {
			out.Free++
		}
	}
	out.Total = len(users)
	return out, nil
}

// SetPlan cambia el plan de un usuario (acción de administrador).
func (uc *UserUseCase) SetPlan(ctx context.Context, id string, in dto.UpdatePlanRequest) (*dto.UserResponse, error) {
	if in.Plan != entity.PlanFree && in.Plan != entity.PlanPremium {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.UpdatePlan(ctx, id, in.Plan, uc.clock.Now()); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}
