package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		actual   string
		required string
		want     bool
	}{
		{RoleUser, RoleUser, true},
		{RoleUser, RoleAdmin, false},
		{RoleUser, RoleSuperuser, false},
		{RoleAdmin, RoleUser, true},
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleSuperuser, false},
		{RoleSuperuser, RoleAdmin, true},
		{RoleSuperuser, RoleSuperuser, true},
		// Unknown or missing roles never pass.
		{"", RoleUser, false},
		{"MODERATOR", RoleUser, false},
		{RoleAdmin, "MODERATOR", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoleAtLeast(tc.actual, tc.required),
			"RoleAtLeast(%q, %q)", tc.actual, tc.required)
	}
}

func TestIsValidExitType(t *testing.T) {
	for _, v := range ExitTypes {
		assert.True(t, IsValidExitType(v))
	}
	assert.False(t, IsValidExitType("Cliff"))
	assert.False(t, IsValidExitType("building"))
	assert.False(t, IsValidExitType(""))
}
