package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleSubAdmin.IsValid())
	assert.True(t, RoleUser.IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("superadmin").IsValid())
	assert.False(t, Role("Admin").IsValid())
}

func TestRole_RequiredParentRole(t *testing.T) {
	parent, ok := RoleSubAdmin.RequiredParentRole()
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, parent)

	parent, ok = RoleUser.RequiredParentRole()
	assert.True(t, ok)
	assert.Equal(t, RoleSubAdmin, parent)

	_, ok = RoleAdmin.RequiredParentRole()
	assert.False(t, ok, "admins are roots and must not require a parent")
}

func TestRole_CanViewTree(t *testing.T) {
	assert.True(t, RoleAdmin.CanViewTree())
	assert.True(t, RoleSubAdmin.CanViewTree())
	assert.False(t, RoleUser.CanViewTree())
}
