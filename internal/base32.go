// Package internal holds shared helpers used across the planner, header
// codec, and stripe index packages.
package internal

import (
	"encoding/base32"

	"github.com/google/uuid"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz156789"

var customEncoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// EncodeToBase32 renders data in a lowercase, unpadded base32 alphabet
// suitable for log lines and telemetry labels.
func EncodeToBase32(data []byte) string {
	return customEncoding.EncodeToString(data)
}

// EncodeUUIDToBase32 renders a UUID compactly.
func EncodeUUIDToBase32(id uuid.UUID) string {
	return EncodeToBase32(id[:])
}

// ShortSessionID returns the compact base32 rendering of a session id,
// the form planner log lines use instead of the full 36-character UUID
// string.
func ShortSessionID(id uuid.UUID) string {
	return EncodeUUIDToBase32(id)
}
