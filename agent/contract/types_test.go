package contract

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSessionContextLogRedactsAuthToken(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Object("session", SessionContext{
		DisplayName: "Ann",
		Age:         31,
		AuthToken:   "secret-jwt",
	}).Msg("dispatch")

	out := buf.String()
	if strings.Contains(out, "secret-jwt") {
		t.Fatalf("auth token leaked into log: %s", out)
	}
	if !strings.Contains(out, `"has_auth_token":true`) {
		t.Fatalf("missing has_auth_token flag: %s", out)
	}
	if !strings.Contains(out, `"display_name":"Ann"`) {
		t.Fatalf("missing display name: %s", out)
	}
}

func TestAgentTypeDisplayName(t *testing.T) {
	t.Parallel()

	if got := AgentTypeCart.DisplayName(); got != "Cart Manager" {
		t.Fatalf("DisplayName() = %q", got)
	}
	if got := AgentTypeShopping.DisplayName(); got != "Shopping Assistant" {
		t.Fatalf("DisplayName() = %q", got)
	}
}
