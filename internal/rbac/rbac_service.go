package rbac

import (
	"strings"
	"sync"

	"go-attendance/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type policy struct {
	role, resource, action string
}

// defaultPolicies: ADMIN inherits everything an EMPLOYEE may do.
var defaultPolicies = []policy{
	{domain.RoleEmployee, "attendance", "create"},
	{domain.RoleEmployee, "attendance", "read"},
	{domain.RoleEmployee, "timer", "*"},
	{domain.RoleEmployee, "leave", "create"},
	{domain.RoleEmployee, "leave", "read"},
	{domain.RoleEmployee, "worklocation", "read"},
	{domain.RoleEmployee, "worktime", "read"},

	{domain.RoleAdmin, "attendance", "read_all"},
	{domain.RoleAdmin, "leave", "read_all"},
	{domain.RoleAdmin, "leave", "update"},
	{domain.RoleAdmin, "user", "*"},
	{domain.RoleAdmin, "worklocation", "*"},
	{domain.RoleAdmin, "worktime", "*"},
}

type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	PermissionsForRole(role string) ([]domain.PermissionResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService loads the built-in role policies into enforcer.
func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer, logger: zap.L().Named("rbac.service")}
	if err := s.loadPolicies(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicies() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	if _, err := s.enforcer.AddGroupingPolicy(domain.RoleAdmin, domain.RoleEmployee); err != nil {
		return err
	}
	for _, p := range defaultPolicies {
		if _, err := s.enforcer.AddPolicy(p.role, p.resource, p.action); err != nil {
			return err
		}
	}
	s.logger.Debug("rbac policies loaded", zap.Int("policies", len(defaultPolicies)))
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) PermissionsForRole(role string) ([]domain.PermissionResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perms, err := s.enforcer.GetImplicitPermissionsForUser(strings.ToUpper(strings.TrimSpace(role)))
	if err != nil {
		return nil, err
	}
	out := make([]domain.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		out = append(out, domain.PermissionResponse{Resource: p[1], Action: p[2]})
	}
	return out, nil
}
