// Package timezone keeps the application timezone used for booking dates and
// record timestamps.
//
// Usage:
//
//	timezone.Init(cfg.App.Timezone)          // once at startup, e.g. "Europe/London"
//	now := timezone.Now()                    // current time in app timezone
//	d, err := timezone.Parse("2006-01-02", "2025-03-14")
//
// Until Init is called, or when it is given an unknown name, everything runs in UTC.
package timezone
