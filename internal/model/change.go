package model

import "time"

// Entity тип сущности в событиях изменений
type Entity string

const (
	EntityTodo Entity = "todo"
	EntityNote Entity = "note"
)

// Op вид изменения
type Op string

const (
	OpHello   Op = "hello"
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Change событие изменения сущности в хранилище
type Change struct {
	Entity Entity    `json:"entity,omitempty"`
	Op     Op        `json:"op"`
	ID     int64     `json:"id,omitempty"`
	At     time.Time `json:"at"`
}
