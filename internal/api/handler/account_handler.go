package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/car-booking/internal/core/domain"
	"github.com/99minutos/car-booking/internal/core/ports"
	"github.com/99minutos/car-booking/internal/pkg/metrics"
)

type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupData struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type loginData struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Signup creates a new account.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      201   {object}  successResponse{data=signupData}
// @Failure      400   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /auth/signup [post]
func (h *AccountHandler) Signup(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}

	userID, err := h.accounts.Signup(c.Request().Context(), req.Username, req.Password)
	metrics.AuthAttemptsTotal.WithLabelValues("signup", resultLabel(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ok(signupData{Message: "user created successfully", UserID: userID}))
}

// Login verifies credentials and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      200   {object}  successResponse{data=loginData}
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /auth/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}

	token, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	metrics.AuthAttemptsTotal.WithLabelValues("login", resultLabel(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ok(loginData{Message: "Login successful", Token: token}))
}

// errorBody documents the error envelope rendered by the API error handler.
type errorBody struct {
	Error string `json:"error" example:"invalid inputs"`
	Kind  string `json:"kind" example:"InvalidInput"`
}
