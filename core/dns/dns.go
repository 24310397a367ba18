package dns

import (
	"context"
	"fmt"
)

// RecordType is the DNS record type of an address family.
type RecordType string

const (
	TypeA    RecordType = "A"
	TypeAAAA RecordType = "AAAA"
)

// Record is a resource record as reported by the provider. Records are
// fetched fresh on every update and never cached locally.
type Record struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           RecordType `json:"type"`
	Content        string     `json:"content"`
	TTL            int        `json:"ttl"`
	LastChangeDate string     `json:"lastChangeDate"`
}

// IProvider interface
type IProvider interface {
	String() string
	// Endpoint returns the API base URL.
	Endpoint() string
	// FindRecordID resolves the provider ID of the single record matching
	// name and type. Zero or multiple matches are an error.
	FindRecordID(ctx context.Context, name string, recordType RecordType) (string, error)
	// UpdateRecord rewrites the record matching name and type with the given
	// content. A ttl of 0 means "not given" and falls back to the configured
	// default. Returns the record as reported back by the provider.
	UpdateRecord(ctx context.Context, name string, recordType RecordType, content string, ttl int) (*Record, error)
}

// Error is the uniform error for everything that goes wrong talking to the
// provider: transport failures, provider-reported errors inside 200
// responses, and inconsistent lookup or update results. Code is either an
// HTTP status or the provider's own error code.
type Error struct {
	Code   int
	Detail any
}

// NewError returns an Error with the given code and detail.
func NewError(code int, detail any) *Error {
	return &Error{Code: code, Detail: detail}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d - %v", e.Code, e.Detail)
}
