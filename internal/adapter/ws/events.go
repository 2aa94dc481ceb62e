package ws

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Event type constants for WebSocket messages.
const (
	EventWork       = "economy.work"
	EventGamble     = "economy.gamble"
	EventSlots      = "economy.slots"
	EventPurchase   = "economy.purchase"
	EventMoveIn     = "economy.movein"
	EventEvict      = "economy.evict"
	EventAdjust     = "economy.adjust"
	EventCompliance = "economy.compliance"
	EventReset      = "economy.reset"
)

// BalanceEvent is broadcast when a tenant's balance changes.
type BalanceEvent struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	Delta    int64  `json:"delta"`
	Balance  int64  `json:"balance"`
	Detail   string `json:"detail,omitempty"`
}

// FloorSpaceEvent is broadcast when a tenant's floor space changes.
type FloorSpaceEvent struct {
	TenantID   string  `json:"tenant_id"`
	Name       string  `json:"name"`
	Delta      float64 `json:"delta"`
	FloorSpace float64 `json:"floor_space"`
}

// ResetEvent is broadcast after a quota reset pass.
type ResetEvent struct {
	TenantsReset int64 `json:"tenants_reset"`
}

// BroadcastEvent is a convenience method that marshals a typed event and broadcasts it.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.Broadcast(ctx, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
