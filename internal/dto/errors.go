package dto

import "time"

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Lock    *LockInfo `json:"lock,omitempty"`
}

// LockInfo describes the lock that refused a schedule write.
type LockInfo struct {
	Date      string    `json:"date,omitempty"`
	WeekStart string    `json:"weekStart,omitempty"`
	LockedBy  string    `json:"lockedBy"`
	LockedAt  time.Time `json:"lockedAt"`
}
