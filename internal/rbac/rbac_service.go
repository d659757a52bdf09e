package rbac

import (
	"errors"
	"strings"
	"sync"

	"go-hr-portal/internal/domain"

	"github.com/casbin/casbin/v2"
)

var ErrUnknownUserType = errors.New("unknown user type")

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(userType string) ([]domain.PermissionResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
}

// NewService seeds enforcer with policies (DefaultPolicies when none given).
func NewService(enforcer *casbin.Enforcer, policies ...[]string) (Service, error) {
	if len(policies) == 0 {
		policies = DefaultPolicies
	}
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, err
	}
	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	userType := strings.ToUpper(strings.TrimSpace(req.UserType))
	if userType != domain.UserTypeEmployer && userType != domain.UserTypeEmployee {
		return false, ErrUnknownUserType
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.enforcer.Enforce(userType, req.Resource, req.Action)
}

func (s *service) Permissions(userType string) ([]domain.PermissionResponse, error) {
	userType = strings.ToUpper(strings.TrimSpace(userType))
	if userType != domain.UserTypeEmployer && userType != domain.UserTypeEmployee {
		return nil, ErrUnknownUserType
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, err := s.enforcer.GetFilteredPolicy(0, userType)
	if err != nil {
		return nil, err
	}

	perms := make([]domain.PermissionResponse, 0, len(rules))
	for _, rule := range rules {
		perms = append(perms, domain.PermissionResponse{Resource: rule[1], Action: rule[2]})
	}
	return perms, nil
}
