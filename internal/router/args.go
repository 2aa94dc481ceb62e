package router

import (
	"strings"

	"github.com/closetware/landlord/internal/domain/economy"
)

// SplitArgs breaks a command line into the command word and its
// arguments. The leading prefix character is stripped from the command.
func SplitArgs(content string) (cmd string, args []string) {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return "", nil
	}
	cmd = strings.ToLower(strings.TrimPrefix(fields[0], commandPrefix))
	return cmd, fields[1:]
}

// ParseMention extracts the user ID from a chat mention token, accepting
// both the plain (<@123>) and nickname (<@!123>) forms.
func ParseMention(token string) (string, bool) {
	if !strings.HasPrefix(token, "<@") || !strings.HasSuffix(token, ">") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(token, "<@"), ">")
	id = strings.TrimPrefix(id, "!")
	if id == "" {
		return "", false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return id, true
}

// ParseAdjustToken reads a run of + or - characters into an adjustment
// direction and a repeat count. Mixed or empty tokens are invalid.
func ParseAdjustToken(token string) (economy.Direction, int, bool) {
	if token == "" {
		return 0, 0, false
	}
	var dir economy.Direction
	switch token[0] {
	case '+':
		dir = economy.Increase
	case '-':
		dir = economy.Decrease
	default:
		return 0, 0, false
	}
	for i := 1; i < len(token); i++ {
		if token[i] != token[0] {
			return 0, 0, false
		}
	}
	return dir, len(token), true
}
