package config

import (
	"sort"

	"github.com/pkg/errors"
)

// AllowList is the set of domains the service may update. The config file
// encodes it as either false ("allow any domain") or a list of domain
// strings; the parsed form keeps that choice explicit instead of overloading
// a single value.
type AllowList struct {
	restricted bool
	domains    map[string]struct{}
}

// Unrestricted returns an allow-list accepting every domain.
func Unrestricted() AllowList {
	return AllowList{}
}

// Restricted returns an allow-list accepting exactly the given domains.
func Restricted(domains ...string) AllowList {
	set := make(map[string]struct{}, len(domains))
	for _, domain := range domains {
		set[domain] = struct{}{}
	}
	return AllowList{restricted: true, domains: set}
}

// ParseAllowList converts the raw allowed_domains config value. Absent,
// false and the empty list all mean unrestricted; any shape other than a
// list of strings is a configuration error.
func ParseAllowList(raw any) (AllowList, error) {
	switch value := raw.(type) {
	case nil:
		return Unrestricted(), nil
	case bool:
		if value {
			return AllowList{}, errors.New("allowed_domains has to be a list of domains or false to allow all domains")
		}
		return Unrestricted(), nil
	case []string:
		return Restricted(value...), nil
	case []any:
		domains := make([]string, 0, len(value))
		for _, entry := range value {
			domain, ok := entry.(string)
			if !ok {
				return AllowList{}, errors.Errorf("allowed_domains entry %v is not a domain string", entry)
			}
			domains = append(domains, domain)
		}
		return Restricted(domains...), nil
	default:
		return AllowList{}, errors.Errorf("allowed_domains has to be a list of domains or false, got %T", raw)
	}
}

// Allows reports whether domain may be updated.
func (a AllowList) Allows(domain string) bool {
	if !a.IsRestricted() {
		return true
	}
	_, ok := a.domains[domain]
	return ok
}

// IsRestricted reports whether the allow-list limits domains at all.
// An empty member set counts as unrestricted.
func (a AllowList) IsRestricted() bool {
	return a.restricted && len(a.domains) > 0
}

// Domains returns the allowed domains in sorted order.
func (a AllowList) Domains() []string {
	domains := make([]string, 0, len(a.domains))
	for domain := range a.domains {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}
