package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   uint64
	UUID = uuid.UUID
	// User is read-only for this service: accounts are provisioned
	// elsewhere, we only authenticate against them.
	User struct {
		UUID         UUID
		Email        string
		PasswordHash *string

		CreatedAt time.Time
	}
	Users []*User
)
