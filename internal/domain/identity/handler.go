package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
)

type Handler struct {
	svc    *Service
	issuer *auth.TokenIssuer
}

func NewHandler(svc *Service, issuer *auth.TokenIssuer) *Handler {
	return &Handler{svc: svc, issuer: issuer}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/login", h.Login)
	e.GET("/users", h.ListUsers)
	e.POST("/users", h.CreateUser)
	e.DELETE("/users/:id", h.DeleteUser)
}

type loginRequest struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// userSummary is the identity payload embedded in login responses.
type userSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request body"})
	}

	u, err := h.svc.Authenticate(c.Request().Context(), req.ID, req.Role, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "Invalid credentials"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "login failed"})
	}

	token, err := h.issuer.Sign(u.ID, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "login failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"msg":   "Login successful",
		"token": token,
		"user":  userSummary{ID: u.ID, Name: u.Name, Role: u.Role},
	})
}

type userListItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "failed to list users"})
	}

	out := make([]userListItem, 0, len(users))
	for _, u := range users {
		out = append(out, userListItem{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	}
	return c.JSON(http.StatusOK, out)
}

type createUserRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Gender   *string `json:"gender"`
}

func (h *Handler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request body"})
	}

	u := &User{ID: req.ID, Name: req.Name, Email: req.Email, Role: req.Role, Gender: req.Gender}
	if err := h.svc.CreateUser(c.Request().Context(), u, req.Password); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": err.Error()})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"msg": "User created",
		"user": echo.Map{
			"id":     u.ID,
			"name":   u.Name,
			"email":  u.Email,
			"role":   u.Role,
			"gender": u.Gender,
		},
	})
}

func (h *Handler) DeleteUser(c echo.Context) error {
	err := h.svc.DeleteUser(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "User not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "failed to delete user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "User deleted"})
}
