// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// It is the primary key type across all Trackline tables and the request ID
// format on the wire. Because it is time-sortable, it ensures clustered-index
// friendliness in PostgreSQL and makes request IDs grep-sortable in logs.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// If the time-ordered generator fails (OS entropy exhaustion), it degrades
// to a random UUIDv4 rather than failing the caller: an unsortable ID beats
// no ID.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
