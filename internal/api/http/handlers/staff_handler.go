package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-report-service/internal/api/dto"
	"github.com/spec-kit/case-report-service/internal/domain"
	"github.com/spec-kit/case-report-service/internal/service"
	apperrors "github.com/spec-kit/case-report-service/pkg/util"
)

// StaffHandler exposes staff authentication endpoints.
type StaffHandler struct {
	authService *service.AuthService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(authService *service.AuthService) *StaffHandler {
	return &StaffHandler{authService: authService}
}

// Login handles POST /auth/staff/login.
func (h *StaffHandler) Login(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	staff, token, exp, err := h.authService.LoginStaff(c.Context(), req.Email, req.Password)
	if err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"staff": staffResponse(staff),
			"auth":  dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Create handles POST /staff/members.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	role := domain.StaffRole(req.Role)
	switch role {
	case "", domain.StaffRoleAnalyst, domain.StaffRoleAdmin:
	default:
		return apperrors.NewValidationError("role must be ANALYST or ADMIN", nil)
	}

	staff, err := h.authService.CreateStaff(c.Context(), req.Name, req.Email, req.Password, role, req.Team)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": staffResponse(staff)})
}

func staffResponse(staff *domain.StaffMember) dto.StaffResponse {
	return dto.StaffResponse{
		ID:     staff.ID,
		Name:   staff.Name,
		Email:  staff.Email,
		Role:   staff.Role,
		Team:   staff.Team,
		Active: staff.Active,
	}
}
