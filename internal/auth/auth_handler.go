package auth

import (
	"net/http"
	"time"

	platform "go-attendance/internal/shared/request"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const accessTokenCookie = "access_token"

type Handler struct {
	service       Service
	secureCookies bool
	cookieMaxAge  int
}

func NewHandler(s Service, secureCookies bool, sessionTTL time.Duration) *Handler {
	return &Handler{service: s, secureCookies: secureCookies, cookieMaxAge: int(sessionTTL.Seconds())}
}

func (ctrl *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	res, err := ctrl.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	ctrl.setTokenCookie(c, res.AccessToken)
	response.Success(c, http.StatusOK, res, nil)
}

func (ctrl *Handler) Refresh(c *gin.Context) {
	res, err := ctrl.service.Refresh(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	ctrl.setTokenCookie(c, res.AccessToken)
	response.Success(c, http.StatusOK, res, nil)
}

func (ctrl *Handler) Me(c *gin.Context) {
	userResp, err := ctrl.service.Me(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, userResp, nil)
}

func (ctrl *Handler) Logout(c *gin.Context) {
	if err := ctrl.service.Logout(c.Request.Context(), c.GetString("session_id")); err != nil {
		response.FromError(c, err)
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ctrl.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	response.Success(c, http.StatusOK, "Logout success.", nil)
}

// setTokenCookie only targets browsers; other clients keep the token from the body.
func (ctrl *Handler) setTokenCookie(c *gin.Context, token string) {
	clientType := platform.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent"))
	if !platform.IsWebClient(clientType) {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   ctrl.cookieMaxAge,
		HttpOnly: true,
		Secure:   ctrl.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
