package amqp

import (
	"encoding/json"
	"time"
)

// Entity names carried in change messages.
const (
	EntityTransaction = "transaction"
	EntityCategory    = "category"
	EntitySavings     = "savings"
	EntityInstallment = "installment"
	EntityNeed        = "monthly_need"
	EntityWishlist    = "wishlist"
	EntityAsset       = "asset"
	EntitySettings    = "settings"
	EntityDataset     = "dataset"
)

// Actions carried in change messages.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionImported = "imported"
)

// ChangeMessage announces that the local dataset changed. It names the
// entity type and action but carries no payload; consumers pull the current
// snapshot themselves.
type ChangeMessage struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(entity, action string) *ChangeMessage {
	return &ChangeMessage{
		Entity:    entity,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
