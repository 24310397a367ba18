package hostingde

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jxo-me/dyndns/config"
	"github.com/jxo-me/dyndns/consts"
	"github.com/jxo-me/dyndns/core/dns"
	"github.com/jxo-me/dyndns/core/logger"
	"github.com/jxo-me/dyndns/internal/util"
)

const (
	Endpoint string = "https://secure.hosting.de/api/dns/v1/json"
	Code     string = "hostingde"
)

// HostingDE talks to the hosting.de DNS JSON API. It performs exactly the
// two operations needed to update one record: recordsFind to resolve the
// record ID and recordsUpdate to rewrite it.
type HostingDE struct {
	endpoint   string
	zone       string
	token      string
	defaultTTL int
	client     *http.Client
	logger     logger.ILogger
}

func New(conf *config.Provider, log logger.ILogger) *HostingDE {
	return &HostingDE{
		endpoint:   Endpoint,
		zone:       conf.Zone,
		token:      conf.Token,
		defaultTTL: conf.DefaultTTL,
		client:     util.CreateHTTPClient(),
		logger:     log,
	}
}

func (h *HostingDE) String() string {
	return Code
}

func (h *HostingDE) Endpoint() string {
	return h.endpoint
}

// SetEndpoint overrides the API base URL. Tests point it at a local server.
func (h *HostingDE) SetEndpoint(url string) {
	h.endpoint = url
}

type fieldFilter struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type recordFilter struct {
	SubFilterConnective string        `json:"subFilterConnective"`
	SubFilter           []fieldFilter `json:"subFilter"`
}

type findRequest struct {
	AuthToken string       `json:"authToken"`
	Filter    recordFilter `json:"filter"`
}

type findResponse struct {
	Data []dns.Record `json:"data"`
}

type recordUpdate struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     dns.RecordType `json:"type"`
	Content  string         `json:"content"`
	Comments string         `json:"comments"`
	TTL      int            `json:"ttl"`
}

type updateRequest struct {
	AuthToken       string         `json:"authToken"`
	ZoneName        string         `json:"zoneName"`
	RecordsToModify []recordUpdate `json:"recordsToModify"`
}

type updateResponse struct {
	Records []dns.Record `json:"records"`
}

type apiError struct {
	Code  int    `json:"code"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

type apiEnvelope struct {
	Errors   []apiError      `json:"errors"`
	Response json.RawMessage `json:"response"`
}

// apiRequest posts one payload and unwraps the provider envelope into
// result. hosting.de answers 200 even for failed transactions and reports
// them in the errors list, because errors and successes can be mixed in a
// batch. We only send one transaction at a time, so a non-empty errors list
// is authoritative failure and the first entry carries the cause.
func (h *HostingDE) apiRequest(ctx context.Context, endpoint string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return dns.NewError(http.StatusInternalServerError, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return dns.NewError(http.StatusInternalServerError, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	h.logger.Debugf("%s request to %s", endpoint, h.endpoint)
	resp, err := h.client.Do(req)
	if err != nil {
		return dns.NewError(http.StatusBadGateway, err.Error())
	}
	raw, err := util.ReadResponseBody(resp)
	if err != nil {
		return dns.NewError(http.StatusBadGateway, err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		var detail any
		if err := json.Unmarshal(raw, &detail); err != nil {
			detail = string(raw)
		}
		return dns.NewError(resp.StatusCode, detail)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return dns.NewError(http.StatusBadGateway, err.Error())
	}

	if len(envelope.Errors) > 0 {
		first := envelope.Errors[0]
		text := first.Text
		if first.Value != "" {
			text = fmt.Sprintf("%s - %s", first.Value, first.Text)
		}
		return dns.NewError(first.Code, text)
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Response, result); err != nil {
			return dns.NewError(http.StatusBadGateway, err.Error())
		}
	}
	return nil
}

// FindRecordID resolves the provider ID of the single record matching name
// and type. Exactly one record must exist; the service never guesses which
// record to update.
func (h *HostingDE) FindRecordID(ctx context.Context, name string, recordType dns.RecordType) (string, error) {
	var result findResponse
	err := h.apiRequest(ctx, "recordsFind", &findRequest{
		AuthToken: h.token,
		Filter: recordFilter{
			SubFilterConnective: "AND",
			SubFilter: []fieldFilter{
				{Field: "RecordName", Value: name},
				{Field: "RecordType", Value: string(recordType)},
			},
		},
	}, &result)
	if err != nil {
		return "", err
	}

	switch {
	case len(result.Data) == 0:
		return "", dns.NewError(http.StatusNotFound, "No matching record found.")
	case len(result.Data) > 1:
		return "", dns.NewError(http.StatusBadRequest, "More than one matching record found, cannot continue.")
	case result.Data[0].ID == "":
		return "", dns.NewError(http.StatusNotFound, "Could not find ID for record in response.")
	}

	return result.Data[0].ID, nil
}

// UpdateRecord rewrites the single record matching name and type with the
// given content and returns the record as reported back by the provider.
// A ttl below consts.MinTTL (including 0 for "not given") is replaced with
// the configured default rather than rejected.
func (h *HostingDE) UpdateRecord(ctx context.Context, name string, recordType dns.RecordType, content string, ttl int) (*dns.Record, error) {
	recordID, err := h.FindRecordID(ctx, name, recordType)
	if err != nil {
		return nil, err
	}

	effectiveTTL := h.defaultTTL
	if ttl >= consts.MinTTL {
		effectiveTTL = ttl
	}

	var result updateResponse
	err = h.apiRequest(ctx, "recordsUpdate", &updateRequest{
		AuthToken: h.token,
		ZoneName:  h.zone,
		RecordsToModify: []recordUpdate{
			{
				ID:       recordID,
				Name:     name,
				Type:     recordType,
				Content:  content,
				Comments: consts.RecordComment,
				TTL:      effectiveTTL,
			},
		},
	}, &result)
	if err != nil {
		return nil, err
	}

	var matched []dns.Record
	for _, record := range result.Records {
		if record.ID == recordID {
			matched = append(matched, record)
		}
	}

	switch {
	case len(matched) == 0:
		return nil, dns.NewError(http.StatusInternalServerError,
			"Update succeeded, but failed to find updated record in success response. This should not happen.")
	case len(matched) > 1:
		return nil, dns.NewError(http.StatusInternalServerError,
			"Update succeeded, but found more than one result in success response. This should not happen.")
	}

	return &matched[0], nil
}

var _ dns.IProvider = (*HostingDE)(nil)
