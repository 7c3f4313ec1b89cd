package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifyAddress(t *testing.T) {
	tests := []struct {
		id, domain, want string
	}{
		{"alice", "example.com", "alice@example.com"},
		{"alice@", "example.com", "alice@example.com"},
		{"alice@other.org", "example.com", "alice@other.org"},
		{"alice", "@example.com", "alice@example.com"},
		{"alice", "", "alice"},
		{"  bob  ", "example.com", "bob@example.com"},
		{"", "example.com", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QualifyAddress(tt.id, tt.domain), "id %q domain %q", tt.id, tt.domain)
	}
}

func TestParseInvitees(t *testing.T) {
	got := ParseInvitees("alice, bob@other.org;carol@ \n Alice@example.com,,", "example.com")
	assert.Equal(t, []string{"alice@example.com", "bob@other.org", "carol@example.com"}, got)

	assert.Empty(t, ParseInvitees(" , ", "example.com"))
}

func TestFilterSchedulees(t *testing.T) {
	invitees := []string{"alice@example.com", "bob@other.org", "Carol@Example.com"}

	got := FilterSchedulees(invitees, "example.com", "me@example.com")
	assert.Equal(t, []string{"alice@example.com", "Carol@Example.com", "me@example.com"}, got)

	got = FilterSchedulees(invitees, "example.com", "ALICE@example.com")
	assert.Equal(t, []string{"alice@example.com", "Carol@Example.com"}, got)

	got = FilterSchedulees(invitees, "", "")
	assert.Equal(t, invitees, got)

	feed := func(inv string) bool { return inv == "bob@other.org" }
	got = FilterSchedulees(invitees, "example.com", "me@example.com", feed)
	assert.Equal(t, []string{"alice@example.com", "bob@other.org", "Carol@Example.com", "me@example.com"}, got)
}
