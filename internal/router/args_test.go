package router

import (
	"testing"

	"github.com/closetware/landlord/internal/domain/economy"
)

func TestSplitArgs(t *testing.T) {
	cmd, args := SplitArgs("!gamble heads  50")
	if cmd != "gamble" {
		t.Errorf("expected command gamble, got %q", cmd)
	}
	if len(args) != 2 || args[0] != "heads" || args[1] != "50" {
		t.Errorf("unexpected args %v", args)
	}

	cmd, args = SplitArgs("!WORK")
	if cmd != "work" || len(args) != 0 {
		t.Errorf("expected lowercased bare command, got %q %v", cmd, args)
	}

	cmd, _ = SplitArgs("   ")
	if cmd != "" {
		t.Errorf("blank input should yield no command, got %q", cmd)
	}
}

func TestParseMention(t *testing.T) {
	cases := []struct {
		in   string
		id   string
		ok   bool
	}{
		{"<@123456>", "123456", true},
		{"<@!123456>", "123456", true},
		{"<@>", "", false},
		{"@someone", "", false},
		{"<@abc>", "", false},
		{"123456", "", false},
	}
	for _, tc := range cases {
		id, ok := ParseMention(tc.in)
		if id != tc.id || ok != tc.ok {
			t.Errorf("ParseMention(%q) = %q,%v; want %q,%v", tc.in, id, ok, tc.id, tc.ok)
		}
	}
}

func TestParseAdjustToken(t *testing.T) {
	dir, n, ok := ParseAdjustToken("+++")
	if !ok || dir != economy.Increase || n != 3 {
		t.Errorf("+++ => %v,%d,%v", dir, n, ok)
	}

	dir, n, ok = ParseAdjustToken("--")
	if !ok || dir != economy.Decrease || n != 2 {
		t.Errorf("-- => %v,%d,%v", dir, n, ok)
	}

	for _, bad := range []string{"", "+-", "x++", "++x"} {
		if _, _, ok := ParseAdjustToken(bad); ok {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}
