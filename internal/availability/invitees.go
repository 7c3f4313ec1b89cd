package availability

import "strings"

// ParseInvitees splits a comma or whitespace separated list of invitee
// identifiers, qualifying bare user names with domain. Duplicates are
// removed, keeping first occurrence order.
func ParseInvitees(list, domain string) []string {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})

	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		addr := QualifyAddress(f, domain)
		key := strings.ToLower(addr)
		if addr == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, addr)
	}
	return out
}

// QualifyAddress appends "@domain" to a bare user name, or completes an
// address that ends in "@". Full addresses are returned unchanged.
func QualifyAddress(id, domain string) string {
	id = strings.TrimSpace(id)
	if id == "" || domain == "" {
		return id
	}
	domain = strings.TrimPrefix(domain, "@")

	at := strings.LastIndex(id, "@")
	switch {
	case at < 0:
		return id + "@" + domain
	case at == len(id)-1:
		return id + domain
	default:
		return id
	}
}

// FilterSchedulees keeps the invitees whose calendars are readable from the
// workspace domain and makes sure the requesting user is included. An empty
// domain keeps every invitee. Invitees accepted by any keep function are
// retained whatever their domain.
func FilterSchedulees(invitees []string, domain, user string, keep ...func(string) bool) []string {
	suffix := "@" + strings.ToLower(strings.TrimPrefix(domain, "@"))

	out := make([]string, 0, len(invitees)+1)
	hasUser := user == ""
	for _, inv := range invitees {
		if domain != "" && !strings.HasSuffix(strings.ToLower(inv), suffix) && !kept(inv, keep) {
			continue
		}
		if strings.EqualFold(inv, user) {
			hasUser = true
		}
		out = append(out, inv)
	}
	if !hasUser {
		out = append(out, user)
	}
	return out
}

func kept(inv string, keep []func(string) bool) bool {
	for _, k := range keep {
		if k(inv) {
			return true
		}
	}
	return false
}
