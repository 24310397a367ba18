package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jxo-me/dyndns/config"
	"github.com/jxo-me/dyndns/core/dns"
	"github.com/jxo-me/dyndns/core/logger"
)

// UpdateHandler answers dyndns update requests. Each address family present
// in the request is updated independently: a failing family marks the
// response as failed but does not stop the other one.
type UpdateHandler struct {
	provider dns.IProvider
	allowed  config.AllowList
	logger   logger.ILogger
}

func NewUpdateHandler(provider dns.IProvider, allowed config.AllowList, log logger.ILogger) *UpdateHandler {
	return &UpdateHandler{
		provider: provider,
		allowed:  allowed,
		logger:   log,
	}
}

func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Only GET and POST allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		respond(w, http.StatusBadRequest, "Malformed request parameters.")
		return
	}

	domain := r.Form.Get("domain")
	ipv4 := r.Form.Get("ipv4")
	ipv6 := r.Form.Get("ipv6")

	if domain == "" {
		respond(w, http.StatusBadRequest, "DynDNS target domain missing.")
		return
	}
	if !h.allowed.Allows(domain) {
		respond(w, http.StatusForbidden, "Requested DynDNS domain is not on the allowlist.")
		return
	}

	if ipv4 == "" && ipv6 == "" {
		h.logger.Errorf("Update request for %s received, but neither a v4 nor a v6 address given.", domain)
		respond(w, http.StatusBadRequest, "Neither a v4 nor a v6 address given.")
		return
	}

	// ttl arrives as a query string; parse it explicitly, 0 means not given.
	ttl := 0
	if raw := r.Form.Get("ttl"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond(w, http.StatusBadRequest, "TTL has to be an integer number of seconds.")
			return
		}
		ttl = parsed
	}

	status := http.StatusOK
	var results []string
	for _, family := range []struct {
		recordType dns.RecordType
		address    string
	}{
		{dns.TypeA, ipv4},
		{dns.TypeAAAA, ipv6},
	} {
		if family.address == "" {
			continue
		}
		line, ok := h.update(r.Context(), domain, family.recordType, family.address, ttl)
		results = append(results, line)
		if !ok {
			status = http.StatusBadRequest
		}
	}

	respond(w, status, strings.Join(results, "\n"))
}

// update performs one per-family record update and renders its outcome line.
func (h *UpdateHandler) update(ctx context.Context, domain string, recordType dns.RecordType, address string, ttl int) (string, bool) {
	record, err := h.provider.UpdateRecord(ctx, domain, recordType, address, ttl)
	if err != nil {
		ttlText := "<default>"
		if ttl != 0 {
			ttlText = strconv.Itoa(ttl)
		}
		h.logger.Errorf("Failed to update %s record for %s with address %s and TTL %s: %s",
			recordType, domain, address, ttlText, err)
		return fmt.Sprintf("Failed to update %s record: %s", recordType, err), false
	}

	h.logger.Infof("Successfully updated %s record for %s: %s, TTL %d at %s",
		recordType, record.Name, record.Content, record.TTL, record.LastChangeDate)
	return fmt.Sprintf("Successfully updated %s record for %s to %s", recordType, record.Name, record.Content), true
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
