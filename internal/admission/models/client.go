package models

import "strconv"

// ClientID identifies a client in the client directory.
type ClientID int64

func (c ClientID) String() string {
	return strconv.FormatInt(int64(c), 10)
}

// ClientTier classifies a client for credit-limit policy. The set is open:
// tiers without a dedicated policy fall back to the regular one.
type ClientTier string

const (
	TierRegular       ClientTier = "RegularClient"
	TierImportant     ClientTier = "ImportantClient"
	TierVeryImportant ClientTier = "VeryImportantClient"
)

func (t ClientTier) String() string {
	return string(t)
}

// Client is owned by the client directory. Users reference it without
// taking ownership.
type Client struct {
	ID   ClientID   `json:"id"`
	Name string     `json:"name"`
	Tier ClientTier `json:"tier"`
}
