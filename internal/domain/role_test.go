package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dgiconsole/internal/domain"
)

func TestRoleLevel(t *testing.T) {
	assert.Equal(t, 3, domain.RoleLevel(domain.RoleAdmin))
	assert.Equal(t, 2, domain.RoleLevel(domain.RoleManager))
	assert.Equal(t, 1, domain.RoleLevel(domain.RoleClerk))
	assert.Equal(t, 0, domain.RoleLevel(domain.Role("auditor")))
	assert.Equal(t, 0, domain.RoleLevel(domain.Role("")))
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, domain.RoleAdmin.AtLeast(domain.RoleManager))
	assert.True(t, domain.RoleManager.AtLeast(domain.RoleManager))
	assert.False(t, domain.RoleClerk.AtLeast(domain.RoleManager))
	assert.False(t, domain.Role("auditor").AtLeast(domain.RoleClerk))
	assert.True(t, domain.RoleClerk.AtLeast(domain.RoleClerk))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, domain.RoleAdmin, domain.ParseRole("Admin"))
	assert.Equal(t, domain.RoleManager, domain.ParseRole(" MANAGER "))
	assert.Equal(t, domain.RoleClerk, domain.ParseRole("clerk"))

	unknown := domain.ParseRole("Auditor")
	assert.False(t, unknown.IsValid())
	assert.Equal(t, 0, domain.RoleLevel(unknown))
}
