package timezone

import "time"

// Every tenant carries an IANA timezone and scheduling math runs on
// that tenant's wall clock. Unknown or empty identifiers fall back to
// the default rather than failing the request.

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves a tenant timezone, falling back to the default.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return NowIn(DefaultTimezone)
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
