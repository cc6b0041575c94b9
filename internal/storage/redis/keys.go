package redis

import (
	"fmt"

	"github.com/mcoot/battleship-go/internal/model"
)

// Key prefix for all battleship data
const keyPrefix = "bship"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// statsKey returns the Redis key for the LIST of a user's stat records
func statsKey(userID model.UserID) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, userID)
}

// statSequenceKey returns the Redis key for the stat record ID counter
func statSequenceKey() string {
	return fmt.Sprintf("%s:seq:stats", keyPrefix)
}
