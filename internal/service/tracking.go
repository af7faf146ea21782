package service

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

const trackingPrefix = "ZPS"

var (
	trackingMu     sync.Mutex
	trackingDay    string
	issuedSuffixes = map[string]struct{}{}
)

// NewTrackingID returns a shipment identifier of the form
// ZPS-20060102-A1B2C3: the current UTC date plus three random bytes. The six
// hex characters only span ~16.7M values, so random draws alone would
// collide well within a day's volume; suffixes issued by this process are
// tracked per day and regenerated on a repeat, so two calls in the same
// process never return the same id.
func NewTrackingID() string {
	day := time.Now().UTC().Format("20060102")

	trackingMu.Lock()
	defer trackingMu.Unlock()
	if day != trackingDay {
		trackingDay = day
		issuedSuffixes = map[string]struct{}{}
	}
	for {
		raw := make([]byte, 3)
		// rand.Read only fails when the platform entropy source is broken.
		if _, err := rand.Read(raw); err != nil {
			panic(err)
		}
		suffix := strings.ToUpper(hex.EncodeToString(raw))
		if _, dup := issuedSuffixes[suffix]; dup {
			continue
		}
		issuedSuffixes[suffix] = struct{}{}
		return trackingPrefix + "-" + day + "-" + suffix
	}
}
