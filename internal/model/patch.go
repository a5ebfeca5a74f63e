package model

import (
	"bytes"
	"encoding/json"
)

type patchState uint8

const (
	patchAbsent patchState = iota
	patchNull
	patchSet
)

// Patch описывает одно поле команды обновления с тремя состояниями:
// поле не передано, передано как null, передано со значением.
// Нулевое значение Patch означает "поле не передано".
type Patch[T any] struct {
	state patchState
	value T
}

// Set возвращает Patch со значением
func Set[T any](v T) Patch[T] {
	return Patch[T]{state: patchSet, value: v}
}

// Null возвращает Patch, явно сбрасывающий поле
func Null[T any]() Patch[T] {
	return Patch[T]{state: patchNull}
}

// Absent возвращает Patch без изменений
func Absent[T any]() Patch[T] {
	return Patch[T]{}
}

// IsAbsent - поле не передано
func (p Patch[T]) IsAbsent() bool { return p.state == patchAbsent }

// IsNull - поле передано как null
func (p Patch[T]) IsNull() bool { return p.state == patchNull }

// IsSet - поле передано со значением
func (p Patch[T]) IsSet() bool { return p.state == patchSet }

// Value возвращает значение и признак его наличия
func (p Patch[T]) Value() (T, bool) {
	return p.value, p.state == patchSet
}

// UnmarshalJSON вызывается только для ключей, присутствующих в JSON,
// поэтому отсутствующий ключ остается в состоянии absent.
func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		p.state, p.value = patchNull, zero
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.state, p.value = patchSet, v
	return nil
}

// MarshalJSON нужен клиенту для отправки команд обновления.
// Absent-поля должны отсекаться тегом omitzero у владельца структуры.
func (p Patch[T]) MarshalJSON() ([]byte, error) {
	if p.state != patchSet {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}

// IsZero используется encoding/json (omitzero) для пропуска absent-полей
func (p Patch[T]) IsZero() bool {
	return p.state == patchAbsent
}
