package dto

import "time"

// PairingCodeResponse is handed to the desktop when it opens a checkout page.
type PairingCodeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PairingRegisterRequest binds a pairing code to a desktop session.
type PairingRegisterRequest struct {
	Code      string `json:"code" validate:"required,len=4,numeric"`
	SessionID string `json:"session_id" validate:"required,max=128"`
}

// PairingResolveResponse returns the session bound to a code, if any.
type PairingResolveResponse struct {
	Code      string `json:"code"`
	SessionID string `json:"session_id"`
	Paired    bool   `json:"paired"`
}
