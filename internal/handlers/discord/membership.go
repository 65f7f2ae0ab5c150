package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// permissionLookup reads a member's effective permissions in a channel
type permissionLookup func(ctx context.Context, userID, channelID string) (int64, error)

// PermissionChecker treats members with Administrator or Manage Server as chat admins
type PermissionChecker struct {
	lookup permissionLookup
}

// NewPermissionChecker reads permissions from the session state cache and
// falls back to the REST API on a cache miss
func NewPermissionChecker(session *discordgo.Session) *PermissionChecker {
	return &PermissionChecker{
		lookup: func(ctx context.Context, userID, channelID string) (int64, error) {
			perms, err := session.State.UserChannelPermissions(userID, channelID)
			if err == nil {
				return perms, nil
			}
			return session.UserChannelPermissions(userID, channelID, discordgo.WithContext(ctx))
		},
	}
}

// IsAdmin implements MembershipChecker
func (c *PermissionChecker) IsAdmin(ctx context.Context, chatID, userID string) (bool, error) {
	perms, err := c.lookup(ctx, userID, chatID)
	if err != nil {
		return false, fmt.Errorf("failed to read permissions: %w", err)
	}

	return hasAdminPermission(perms), nil
}

func hasAdminPermission(perms int64) bool {
	return perms&discordgo.PermissionAdministrator != 0 ||
		perms&discordgo.PermissionManageServer != 0
}
