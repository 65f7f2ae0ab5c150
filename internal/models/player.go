package models

// Player is a chat member taking part in a round
type Player struct {
	// ID is the chat platform user ID
	ID string

	// DisplayName is the name shown to other players
	DisplayName string

	// Username is the optional handle of the user
	Username string

	// IsBot is set when the member is a bot account
	IsBot bool
}

// Name returns the best available name for presentation
func (p Player) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Username != "" {
		return p.Username
	}
	return p.ID
}
