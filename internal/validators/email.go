package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the domain behind an owner email can
// actually receive mail: an MX record, or at least a resolvable host.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	// Some small domains receive mail on an A/AAAA record only.
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
