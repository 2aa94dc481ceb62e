package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/closetware/landlord/internal/port/rolegrant"
)

const apiBase = "https://discord.com/api/v10"

// RoleService implements rolegrant.Service over the Discord guild REST
// endpoints using a bot token.
type RoleService struct {
	token      string
	guildID    string
	httpClient *http.Client
}

// NewRoleService creates a role service for the given guild.
func NewRoleService(botToken, guildID string) *RoleService {
	return &RoleService{
		token:      botToken,
		guildID:    guildID,
		httpClient: http.DefaultClient,
	}
}

type discordRole struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type discordMember struct {
	Roles []string `json:"roles"`
}

func (s *RoleService) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("discord marshal: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiBase+path, reader)
	if err != nil {
		return fmt.Errorf("discord request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discord %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("discord API %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("discord decode: %w", err)
		}
	}
	return nil
}

// RoleExists resolves a role name to its ID by listing the guild's roles.
func (s *RoleService) RoleExists(ctx context.Context, name string) (rolegrant.Ref, bool, error) {
	var roles []discordRole
	if err := s.do(ctx, http.MethodGet, "/guilds/"+s.guildID+"/roles", nil, &roles); err != nil {
		return "", false, err
	}
	for _, r := range roles {
		if r.Name == name {
			return rolegrant.Ref(r.ID), true, nil
		}
	}
	return "", false, nil
}

// CreateRole creates a guild role with the given display color.
func (s *RoleService) CreateRole(ctx context.Context, name string, color int) (rolegrant.Ref, error) {
	var created discordRole
	payload := map[string]any{"name": name, "color": color}
	if err := s.do(ctx, http.MethodPost, "/guilds/"+s.guildID+"/roles", payload, &created); err != nil {
		return "", err
	}
	return rolegrant.Ref(created.ID), nil
}

// DeleteRole removes a guild role.
func (s *RoleService) DeleteRole(ctx context.Context, ref rolegrant.Ref) error {
	return s.do(ctx, http.MethodDelete, "/guilds/"+s.guildID+"/roles/"+string(ref), nil, nil)
}

// Grant assigns the role to a guild member.
func (s *RoleService) Grant(ctx context.Context, userID string, ref rolegrant.Ref) error {
	path := "/guilds/" + s.guildID + "/members/" + userID + "/roles/" + string(ref)
	return s.do(ctx, http.MethodPut, path, nil, nil)
}

// Has reports whether the member already holds the role.
func (s *RoleService) Has(ctx context.Context, userID string, ref rolegrant.Ref) (bool, error) {
	var member discordMember
	if err := s.do(ctx, http.MethodGet, "/guilds/"+s.guildID+"/members/"+userID, nil, &member); err != nil {
		return false, err
	}
	for _, id := range member.Roles {
		if id == string(ref) {
			return true, nil
		}
	}
	return false, nil
}
