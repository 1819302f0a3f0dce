package audit

import "time"

type Action string

const (
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Entry is one submission attempt against the upstream catalog.
type Entry struct {
	ID        string    `json:"id"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId,omitempty"`
	Action    Action    `json:"action"`
	Actor     string    `json:"actor"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Filter struct {
	Entities []string
	Limit    int32
	Page     int32
}
