package token_test

import (
	"testing"
	"time"

	"go-hr-portal/internal/auth/token"
	"go-hr-portal/internal/config"

	"github.com/stretchr/testify/assert"
)

func newManager(accessTTL time.Duration) *token.Manager {
	return token.NewManager(config.AuthConfig{
		JWTSecret:       "test-secret-0123456789",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: time.Hour,
	})
}

func TestManager_IssueAndParse(t *testing.T) {
	m := newManager(time.Minute)
	sub := token.Subject{UserID: "u1", UserType: "EMPLOYEE", CompanyID: "c1", EmployeeID: "e1"}

	access, refresh, err := m.IssuePair(sub)
	assert.NoError(t, err)

	claims, err := m.Parse(access, token.TypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "EMPLOYEE", claims.UserType)
	assert.Equal(t, "e1", claims.EmployeeID)

	_, err = m.Parse(refresh, token.TypeAccess)
	assert.ErrorIs(t, err, token.ErrInvalid, "refresh token must not authenticate requests")

	claims, err = m.Parse(refresh, token.TypeRefresh)
	assert.NoError(t, err)
	assert.Equal(t, "c1", claims.CompanyID)
}

func TestManager_Parse_Negative(t *testing.T) {
	m := newManager(-time.Minute)
	access, _, err := m.IssuePair(token.Subject{UserID: "u1", UserType: "EMPLOYER", CompanyID: "c1"})
	assert.NoError(t, err)

	_, err = m.Parse(access, token.TypeAccess)
	assert.ErrorIs(t, err, token.ErrExpired)

	other := token.NewManager(config.AuthConfig{JWTSecret: "another-secret-987654", AccessTokenTTL: time.Minute})
	fresh, _, _ := other.IssuePair(token.Subject{UserID: "u1", UserType: "EMPLOYER", CompanyID: "c1"})
	_, err = m.Parse(fresh, token.TypeAccess)
	assert.ErrorIs(t, err, token.ErrInvalid)

	_, err = m.Parse("not-a-token", token.TypeAccess)
	assert.ErrorIs(t, err, token.ErrInvalid)
}
