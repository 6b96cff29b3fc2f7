package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polyarguminds/polyargu/internal/domain"
)

func TestRoleRotation(t *testing.T) {
	tests := []struct {
		mode domain.SessionMode
		last domain.AgentRole
		want domain.AgentRole
	}{
		{domain.ModeDebate, domain.RolePro, domain.RoleCon},
		{domain.ModeDebate, domain.RoleCon, domain.RolePro},
		{domain.ModeDebate, domain.RoleJudge, domain.RolePro},
		{domain.ModeCollaboration, domain.RoleAnalyst, domain.RoleCreative},
		{domain.ModeCollaboration, domain.RoleCreative, domain.RoleAnalyst},
		{domain.ModeCollaboration, domain.RoleSummarizer, domain.RoleAnalyst},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.NextRole(tt.last), "%s after %s", tt.mode, tt.last)
	}
}

func TestFirstAndTerminalRoles(t *testing.T) {
	assert.Equal(t, domain.RolePro, domain.ModeDebate.FirstRole())
	assert.Equal(t, domain.RoleAnalyst, domain.ModeCollaboration.FirstRole())

	assert.Equal(t, domain.RoleJudge, domain.ModeDebate.TerminalRole())
	assert.Equal(t, domain.RoleSummarizer, domain.ModeCollaboration.TerminalRole())

	assert.True(t, domain.RoleJudge.IsTerminal(domain.ModeDebate))
	assert.False(t, domain.RoleJudge.IsTerminal(domain.ModeCollaboration))
	assert.True(t, domain.RoleSummarizer.IsTerminal(domain.ModeCollaboration))
}
