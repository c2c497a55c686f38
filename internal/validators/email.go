package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsEmailSyntaxValid accepts a bare address such as "ana@salon.com".
func IsEmailSyntaxValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// IsEmailDomainValid resolves the address domain through MX or A records.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// EmailChecker validates optional contact e-mails. Empty is always valid.
type EmailChecker struct {
	CheckDomain bool
}

func (v EmailChecker) Valid(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return true
	}
	if !IsEmailSyntaxValid(email) {
		return false
	}
	return !v.CheckDomain || IsEmailDomainValid(email)
}
