package models

// TokenPayload is contents of a verified auth token
type TokenPayload struct {
	Login string
}
