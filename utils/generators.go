package utils

import "github.com/google/uuid"

// GenerateID generates a random ID for entities
func GenerateID() string {
	return uuid.NewString()
}

// GenerateUserID generates an ID for users created by an admin rather than
// by the identity provider
func GenerateUserID() string {
	return "user_" + uuid.NewString()
}
