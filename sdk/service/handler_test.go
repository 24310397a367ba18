package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxo-me/dyndns/config"
	"github.com/jxo-me/dyndns/core/dns"
	xlogger "github.com/jxo-me/dyndns/sdk/logger"
)

type updateCall struct {
	name       string
	recordType dns.RecordType
	content    string
	ttl        int
}

// fakeProvider answers UpdateRecord from a canned error map and records
// every call.
type fakeProvider struct {
	errs  map[dns.RecordType]error
	calls []updateCall
}

func (f *fakeProvider) String() string   { return "fake" }
func (f *fakeProvider) Endpoint() string { return "" }

func (f *fakeProvider) FindRecordID(ctx context.Context, name string, recordType dns.RecordType) (string, error) {
	return "r-1", nil
}

func (f *fakeProvider) UpdateRecord(ctx context.Context, name string, recordType dns.RecordType, content string, ttl int) (*dns.Record, error) {
	f.calls = append(f.calls, updateCall{name: name, recordType: recordType, content: content, ttl: ttl})
	if err := f.errs[recordType]; err != nil {
		return nil, err
	}
	effectiveTTL := 300
	if ttl >= 60 {
		effectiveTTL = ttl
	}
	return &dns.Record{
		ID:             "r-1",
		Name:           name,
		Type:           recordType,
		Content:        content,
		TTL:            effectiveTTL,
		LastChangeDate: "2023-10-01 12:00:00",
	}, nil
}

func doRequest(handler *UpdateHandler, params url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/dyndns?"+params.Encode(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestUpdateHandlerMissingDomain(t *testing.T) {
	provider := &fakeProvider{}
	handler := NewUpdateHandler(provider, config.Unrestricted(), xlogger.Nop())

	rec := doRequest(handler, url.Values{"ipv4": {"203.0.113.5"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "DynDNS target domain missing.", rec.Body.String())
	assert.Empty(t, provider.calls)
}

func TestUpdateHandlerAllowList(t *testing.T) {
	provider := &fakeProvider{}
	allowed := config.Restricted("home.example.com", "other.example.com")
	handler := NewUpdateHandler(provider, allowed, xlogger.Nop())

	rec := doRequest(handler, url.Values{"domain": {"evil.example.net"}, "ipv4": {"203.0.113.5"}})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Requested DynDNS domain is not on the allowlist.", rec.Body.String())
	assert.Empty(t, provider.calls)
}

func TestUpdateHandlerUnrestrictedAllowsAnyDomain(t *testing.T) {
	for _, allowed := range []config.AllowList{config.Unrestricted(), config.Restricted()} {
		provider := &fakeProvider{}
		handler := NewUpdateHandler(provider, allowed, xlogger.Nop())

		rec := doRequest(handler, url.Values{"domain": {"anything.example.org"}, "ipv4": {"203.0.113.5"}})

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, provider.calls, 1)
	}
}

func TestUpdateHandlerNoAddress(t *testing.T) {
	provider := &fakeProvider{}
	handler := NewUpdateHandler(provider, config.Unrestricted(), xlogger.Nop())

	rec := doRequest(handler, url.Values{"domain": {"home.example.com"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Neither a v4 nor a v6 address given.", rec.Body.String())
	assert.Empty(t, provider.calls)
}

func TestUpdateHandlerMalformedTTL(t *testing.T) {
	provider := &fakeProvider{}
	handler := NewUpdateHandler(provider, config.Unrestricted(), xlogger.Nop())

	rec := doRequest(handler, url.Values{
		"domain": {"home.example.com"},
		"ipv4":   {"203.0.113.5"},
		"ttl":    {"soon"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "TTL has to be an integer number of seconds.", rec.Body.String())
	assert.Empty(t, provider.calls)
}

func TestUpdateHandlerSingleFamilySuccess(t *testing.T) {
	provider := &fakeProvider{}
	handler := NewUpdateHandler(provider, config.Unrestricted(), xlogger.Nop())

	rec := doRequest(handler, url.Values{"domain": {"home.example.com"}, "ipv4": {"203.0.113.5"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Successfully updated A record for home.example.com to 203.0.113.5", rec.Body.String())

	require.Len(t, provider.calls, 1)
	assert.Equal(t, updateCall{
		name:       "home.example.com",
		recordType: dns.TypeA,
		content:    "203.0.113.5",
		ttl:        0,
	}, provider.calls[0])
}

func TestUpdateHandlerBothFamilies(t *testing.T) {
	provider := &fakeProvider{}
	handler := NewUpdateHandler(provider, config.Unrestricted(), xlogger.Nop())

	rec := doRequest(handler, url.Values{
		"domain": {"home.example.com"},
		"ipv4":   {"203.0.113.5"},
		"ipv6":   {"2001:db8::1"},
		"ttl":    {"120"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(rec.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Successfully updated A record for home.example.com to 203.0.113.5", lines[0])
	assert.Equal(t, "Successfully updated AAAA record for home.example.com to 2001:db8::1", lines[1])

	require.Len(t, provider.calls, 2)
	assert.Equal(t, dns.TypeA, provider.calls[0].recordType)
	assert.Equal(t, dns.TypeAAAA, provider.calls[1].recordType)
	assert.Equal(t, 120, provider.calls[0].ttl)
}

// One failing family marks the response as failed but must not stop the
// other family from being updated.
func TestUpdateHandlerPartialFailure(t *testing.T) {
	provider := &fakeProvider{
		errs: map[dns.RecordType]error{
			dns.TypeAAAA: dns.NewError(500, "internal error"),
		},
	}
	handler := NewUpdateHandler(provider, config.Unrestricted(), xlogger.Nop())

	rec := doRequest(handler, url.Values{
		"domain": {"home.example.com"},
		"ipv4":   {"203.0.113.5"},
		"ipv6":   {"2001:db8::1"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	lines := strings.Split(rec.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Successfully updated A record for home.example.com to 203.0.113.5", lines[0])
	assert.Equal(t, "Failed to update AAAA record: 500 - internal error", lines[1])
	assert.Len(t, provider.calls, 2, "both families must be attempted")
}

func TestUpdateHandlerLookupFailureSurfacesAsBadRequest(t *testing.T) {
	provider := &fakeProvider{
		errs: map[dns.RecordType]error{
			dns.TypeA: dns.NewError(http.StatusNotFound, "No matching record found."),
		},
	}
	handler := NewUpdateHandler(provider, config.Unrestricted(), xlogger.Nop())

	rec := doRequest(handler, url.Values{"domain": {"home.example.com"}, "ipv4": {"203.0.113.5"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Failed to update A record: 404 - No matching record found.", rec.Body.String())
}

func TestUpdateHandlerPostForm(t *testing.T) {
	provider := &fakeProvider{}
	handler := NewUpdateHandler(provider, config.Unrestricted(), xlogger.Nop())

	form := url.Values{"domain": {"home.example.com"}, "ipv6": {"2001:db8::1"}}
	req := httptest.NewRequest(http.MethodPost, "/dyndns", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully updated AAAA record for home.example.com to 2001:db8::1", rec.Body.String())
}

func TestUpdateHandlerMethodNotAllowed(t *testing.T) {
	provider := &fakeProvider{}
	handler := NewUpdateHandler(provider, config.Unrestricted(), xlogger.Nop())

	req := httptest.NewRequest(http.MethodPut, "/dyndns?domain=home.example.com&ipv4=203.0.113.5", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Empty(t, provider.calls)
}

var _ dns.IProvider = (*fakeProvider)(nil)
