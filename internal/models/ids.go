package models

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderID returns an identifier of the form ORD-<unix-millis>-<suffix>.
// Uniqueness comes from the generation scheme, not from the store.
func NewOrderID() string {
	return "ORD-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + randSuffix(5)
}

// NewNotificationID returns an identifier of the form NOTIF-<unix-millis>-<suffix>.
func NewNotificationID() string {
	return "NOTIF-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + randSuffix(5)
}

func randSuffix(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(idAlphabet[rand.Intn(len(idAlphabet))])
	}
	return b.String()
}
