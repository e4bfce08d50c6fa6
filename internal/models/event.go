package models

import "time"

// Entities and actions carried by ChangeEvent.
const (
	EntityAsset    = "asset"
	EntityCategory = "category"
	EntityTodo     = "todo"

	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ChangeEvent is the message published to Kafka after a successful mutation.
type ChangeEvent struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}
