package user

import (
	"net/http"
	"sort"
	"strings"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp = filterUsers(resp, q)
	sortUsers(resp, q.SortBy, q.SortDir)

	page, meta := response.Paginate(resp, q.Page, q.PageSize)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http delete user", zap.String("target_user_id", id))

	if err := h.svc.Delete(c.Request.Context(), c.GetString("user_id"), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id}, nil)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), c.Param("id"), req.NewPassword); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password reset successfully"}, nil)
}

func filterUsers(users []UserResponse, q ListQuery) []UserResponse {
	term := strings.ToLower(strings.TrimSpace(q.Q))
	if term == "" && q.Role == "" {
		return users
	}
	filtered := make([]UserResponse, 0, len(users))
	for _, u := range users {
		if q.Role != "" && !strings.EqualFold(u.Role, q.Role) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(u.Email), term) &&
			!strings.Contains(strings.ToLower(u.Name), term) {
			continue
		}
		filtered = append(filtered, u)
	}
	return filtered
}

func sortUsers(users []UserResponse, sortBy, sortDir string) {
	sortBy = strings.ToLower(strings.TrimSpace(sortBy))
	desc := strings.EqualFold(strings.TrimSpace(sortDir), "desc")

	sort.SliceStable(users, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "name":
			less = strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name)
		case "role":
			less = users[i].Role < users[j].Role
		case "created_at":
			less = users[i].CreatedAt < users[j].CreatedAt
		default:
			less = strings.ToLower(users[i].Email) < strings.ToLower(users[j].Email)
		}
		if desc {
			return !less
		}
		return less
	})
}
