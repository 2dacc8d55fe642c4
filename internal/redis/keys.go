package redisx

import "fmt"

const ns = "saju:v1"

// KeyApplications holds the whole record collection as one JSON array,
// mirroring the legacy browser-storage layout.
func KeyApplications() string {
	return ns + ":applications"
}

// KeyEventDeadline stores the promo countdown deadline in unix milliseconds.
func KeyEventDeadline() string {
	return ns + ":event:deadline"
}

func KeyAdminStats() string {
	return ns + ":admin:stats"
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelOrdersChanged() string {
	return ns + ":orders:changed"
}
