package permissions

import (
	"sparkle/config"
	"strings"
)

// Policy decides platform-level rights. It is built once at startup so handlers
// never consult the environment per request.
type Policy interface {
	IsAdmin(email string) bool
}

type allowListPolicy struct {
	admins map[string]struct{}
}

func NewPolicy(cfg *config.Config) Policy {
	return NewAllowListPolicy(cfg.App.AdminEmails...)
}

func NewAllowListPolicy(emails ...string) Policy {
	admins := make(map[string]struct{}, len(emails))

	for _, email := range emails {
		email = normalize(email)
		if email != "" {
			admins[email] = struct{}{}
		}
	}

	return &allowListPolicy{admins: admins}
}

func (p *allowListPolicy) IsAdmin(email string) bool {
	if email == "" {
		return false
	}

	_, ok := p.admins[normalize(email)]

	return ok
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
