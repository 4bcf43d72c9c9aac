package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber builds a human-readable order number: date prefix plus
// a short random suffix, e.g. SP-20260830-9F3C21AB.
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("SP-%s-%s", time.Now().Format("20060102"), suffix)
}
