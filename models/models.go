package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// User represents a staff account that can record snapshots.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Core Models ---

// Snapshot is one shelf-count recording event for a store: either the
// morning (AM) or end-of-day (EOD) pass. Counts hang off it per product.
type Snapshot struct {
	ID        int64            `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	TimeOfDay string           `json:"time_of_day"` // "AM" or "EOD"
	StoreName string           `json:"store_name"`
	Counts    []InventoryCount `json:"counts,omitempty"`
}

// InventoryCount is one product's counted quantity within a snapshot.
type InventoryCount struct {
	ID          int64  `json:"id"`
	SnapshotID  int64  `json:"snapshot_id"`
	ProductType string `json:"product_type"`
	Count       int    `json:"count"`
}

// RecognizedCount is one product count extracted from a shelf photo by the
// recognition step, before it is persisted as an InventoryCount.
type RecognizedCount struct {
	ProductType string `json:"product_type"`
	Count       int    `json:"count"`
}

// --- Request bodies ---

// CreateSnapshotRequest records a manual count pass.
type CreateSnapshotRequest struct {
	TimeOfDay string            `json:"time_of_day"`
	StoreName string            `json:"store_name"`
	Timestamp *time.Time        `json:"timestamp,omitempty"` // defaults to now
	Counts    []RecognizedCount `json:"counts"`
}

// AnalyzeSnapshotRequest submits a shelf photo for count recognition.
// ImageData is a base64 data URL, e.g. "data:image/jpeg;base64,...".
type AnalyzeSnapshotRequest struct {
	ImageData string `json:"image_data"`
	TimeOfDay string `json:"time_of_day"`
	StoreName string `json:"store_name"`
}
