package identity

import "time"

// Account is a stored identity record.
type Account struct {
    ID           string
    Email        string
    PasswordHash []byte
    CreatedAt    time.Time
}
