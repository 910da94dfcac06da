package domain

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

const OrderNumberPrefix = "FF"

var orderNumberPattern = regexp.MustCompile(`^FF-\d{6}-\d{4}$`)

// NewOrderNumber builds FF-YYMMDD-NNNN with a random suffix in [1000, 9999].
// Collisions are possible; the store's unique index rejects them.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", OrderNumberPrefix, now.Format("060102"), 1000+rand.IntN(9000))
}

func IsOrderNumber(s string) bool {
	return orderNumberPattern.MatchString(s)
}
