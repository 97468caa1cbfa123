package models

import (
	"time"

	"github.com/google/uuid"
)

// Candidate carries the raw fields submitted for admission.
//
// Invariants checked before any collaborator is consulted:
//   - FirstName and LastName are non-empty
//   - Email contains both '@' and '.'
//   - the candidate is at least MinimumAge years old on the evaluation date
type Candidate struct {
	FirstName   string `validate:"required"`
	LastName    string `validate:"required"`
	Email       string `validate:"contains=@,contains=."`
	DateOfBirth time.Time
	ClientID    ClientID
}

// User is the record produced by a successful admission.
//
// CreditLimit is only meaningful when HasCreditLimit is true.
// ID and CreatedAt are assigned by the user store on persistence.
type User struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Client         *Client   `json:"client"`
	HasCreditLimit bool      `json:"has_credit_limit"`
	CreditLimit    int64     `json:"credit_limit,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser builds the candidate user for a resolved client. Credit fields are
// left for the tier policy to fill in.
func NewUser(c Candidate, client *Client) *User {
	return &User{
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		DateOfBirth: c.DateOfBirth,
		Client:      client,
	}
}

// ApplyCreditLimit records the computed limit on the user.
func (u *User) ApplyCreditLimit(limit int64) {
	u.HasCreditLimit = true
	u.CreditLimit = limit
}

// ClearCreditLimit marks the user as having no credit limit.
func (u *User) ClearCreditLimit() {
	u.HasCreditLimit = false
	u.CreditLimit = 0
}
