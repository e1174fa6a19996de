package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ThreadNaming derives the requested thread slug and display name for a report
// run. The slug carries a short random token so repeated runs within the same
// second never collide; the display name carries the indicator count so the
// thread is identifiable in the UI.
func ThreadNaming(now time.Time, indicatorCount int) (slug, name string) {
	slug = now.Format("2006-01-02-15-04-05") + "-" + uuid.NewString()[:8]
	name = fmt.Sprintf("ThreatFox IOCs %s (%d indicators)", now.Format("2006-01-02"), indicatorCount)
	return slug, name
}

// FallbackThreadSlug returns a fresh random slug for when remote thread
// creation fails. AnythingLLM creates the thread implicitly on the first
// message to an unknown slug, so the run proceeds with this identifier.
func FallbackThreadSlug() string {
	return uuid.NewString()
}
