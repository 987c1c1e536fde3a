package api

import (
	"net/http"

	"inspection-marketplace/internal/pkg/config"
	reqdto "inspection-marketplace/internal/handler/dto/request"
	resdto "inspection-marketplace/internal/handler/dto/response"
	"inspection-marketplace/internal/handler/httperr"
	"inspection-marketplace/internal/handler/middleware"
	"inspection-marketplace/internal/pkg/cookie"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds      commands.AuthCommands
	users     queries.UserQueries
	cookieCfg config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, users queries.UserQueries, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{cmds: cmds, users: users, cookieCfg: cookieCfg}
}

// @Summary Register
// @Description Create a buyer or mechanic account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 201 {object} resdto.RegisterResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.cmds.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.RegisterResponse{ID: id})
}

// @Summary User login
// @Description Login with email and password; the token is also set as the access_token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.cmds.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	cookie.SetAccessToken(c, h.cookieCfg, res.AccessToken, res.ExpiresIn)
	c.JSON(http.StatusOK, resdto.FromLoginResult(res))
}

// @Summary User logout
// @Description Revoke the current token and clear the cookie
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	jti, exp := middleware.GetToken(c)
	if err := h.cmds.Logout(c.Request.Context(), userID, jti, exp); err != nil {
		httperr.Respond(c, err)
		return
	}
	cookie.ClearAccessToken(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.AuthorizedUserView
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	u, err := h.users.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
