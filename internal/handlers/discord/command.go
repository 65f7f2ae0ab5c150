package discord

import (
	"strings"

	"github.com/KirkDiggler/crocodile/internal/models"
)

// Command names understood by the dispatcher
const (
	CommandGame     = "game"
	CommandStart    = "start"
	CommandEnd      = "end"
	CommandWord     = "word"
	CommandSetMode  = "set_mode"
	CommandLanguage = "lang"
	CommandSettings = "settings"
	CommandScore    = "score"
	CommandTop      = "top"
	CommandPay      = "pay"
	CommandPing     = "ping"
	CommandHelp     = "help"
)

// DefaultPrefixes are the characters that introduce a text command
var DefaultPrefixes = []string{"/", "."}

// Command is a parsed chat command
type Command struct {
	// Name is lower-cased and stripped of the prefix and any @bot suffix
	Name string

	// Args are the whitespace separated words after the name
	Args []string

	// Mentions are the users mentioned alongside the command
	Mentions []models.Player
}

// Arg returns the i-th argument or an empty string
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// ParseCommand reads a command from a chat message. ok is false when the
// message does not start with one of the prefixes.
func ParseCommand(content string, prefixes []string) (cmd *Command, ok bool) {
	content = strings.TrimSpace(content)

	var rest string
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(content, prefix) {
			rest = content[len(prefix):]
			ok = true
			break
		}
	}
	if !ok {
		return nil, false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, false
	}

	name := strings.ToLower(fields[0])
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	if name == "" {
		return nil, false
	}

	return &Command{
		Name: name,
		Args: fields[1:],
	}, true
}
