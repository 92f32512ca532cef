package genelpara

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/berkocan/genelpara-api/internal/entities"
)

const defaultErrorMessage = "unknown error"

type envelope struct {
	Success   json.RawMessage `json:"success"`
	Error     json.RawMessage `json:"error"`
	Data      json.RawMessage `json:"data"`
	RateLimit json.RawMessage `json:"rate_limit"`
}

type wireRecord struct {
	Alis    *wireText `json:"alis"`
	Satis   *wireText `json:"satis"`
	Sembol  *wireText `json:"sembol"`
	Oran    *wireText `json:"oran"`
	Degisim *wireText `json:"degisim"`
	Yon     wireTag   `json:"yon"`
	Source  wireTag   `json:"_source"`
}

type wireRateLimit struct {
	Remaining *int    `json:"remaining"`
	Limit     *int    `json:"limit"`
	ResetAt   *string `json:"reset_at"`
}

// wireText accepts a JSON string or a JSON number and keeps the literal text,
// so prices are never run through a float.
type wireText string

func (t *wireText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("empty value")
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = wireText(s)
		return nil
	}

	if b[0] == '-' || (b[0] >= '0' && b[0] <= '9') {
		*t = wireText(b)
		return nil
	}

	return fmt.Errorf("expected string or number, got %s", b)
}

func (t *wireText) String() string {
	if t == nil {
		return ""
	}
	return string(*t)
}

// wireTag is a label field. A string keeps its value, anything else reads as empty.
type wireTag string

func (t *wireTag) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = ""
		return nil
	}
	*t = wireTag(s)
	return nil
}

func decodeResponse(body []byte, query entities.RateQuery) (*entities.RateResponse, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, entities.Malformed("decode envelope: %v", err)
	}

	if isNull(env.Success) {
		return nil, entities.Malformed("success field missing")
	}
	var success bool
	if err := json.Unmarshal(env.Success, &success); err != nil {
		return nil, entities.Malformed("success is not a boolean: %s", env.Success)
	}

	rateLimit, err := decodeRateLimit(env.RateLimit)
	if err != nil {
		return nil, err
	}

	if !success {
		return &entities.RateResponse{
			Success:      false,
			Records:      []entities.RateRecord{},
			RateLimit:    rateLimit,
			ErrorMessage: decodeErrorMessage(env.Error),
		}, nil
	}

	records, err := decodeData(env.Data, query)
	if err != nil {
		return nil, err
	}

	return &entities.RateResponse{
		Success:   true,
		Records:   records,
		RateLimit: rateLimit,
	}, nil
}

func decodeErrorMessage(raw json.RawMessage) string {
	if isNull(raw) {
		return defaultErrorMessage
	}

	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil || msg == "" {
		return defaultErrorMessage
	}
	return msg
}

func decodeRateLimit(raw json.RawMessage) (*entities.RateLimitInfo, error) {
	if isNull(raw) {
		return nil, nil
	}

	var rl wireRateLimit
	if err := json.Unmarshal(raw, &rl); err != nil {
		return nil, entities.Malformed("decode rate_limit: %v", err)
	}

	switch {
	case rl.Remaining == nil:
		return nil, entities.Malformed("rate_limit.remaining missing")
	case rl.Limit == nil:
		return nil, entities.Malformed("rate_limit.limit missing")
	case rl.ResetAt == nil:
		return nil, entities.Malformed("rate_limit.reset_at missing")
	case *rl.Limit <= 0:
		return nil, entities.Malformed("rate_limit.limit %d is not positive", *rl.Limit)
	case *rl.Remaining < 0 || *rl.Remaining > *rl.Limit:
		return nil, entities.Malformed("rate_limit.remaining %d outside [0, %d]", *rl.Remaining, *rl.Limit)
	}

	return &entities.RateLimitInfo{
		Remaining: *rl.Remaining,
		Limit:     *rl.Limit,
		ResetAt:   *rl.ResetAt,
	}, nil
}

// decodeData walks the data object token by token to keep the server's key order.
func decodeData(raw json.RawMessage, query entities.RateQuery) ([]entities.RateRecord, error) {
	if isNull(raw) {
		return nil, entities.Malformed("data field missing")
	}

	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil || len(items) != 0 {
			return nil, entities.Malformed("data is not an object")
		}
		return []entities.RateRecord{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))

	tok, err := dec.Token()
	if err != nil {
		return nil, entities.Malformed("decode data: %v", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, entities.Malformed("data is not an object")
	}

	records := []entities.RateRecord{}
	position := make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, entities.Malformed("decode data key: %v", err)
		}
		symbol, ok := tok.(string)
		if !ok {
			return nil, entities.Malformed("data key is not a string")
		}

		var wr wireRecord
		if err := dec.Decode(&wr); err != nil {
			return nil, entities.Malformed("decode data[%s]: %v", symbol, err)
		}

		rec, err := wr.toRecord(symbol, query)
		if err != nil {
			return nil, err
		}

		if i, dup := position[symbol]; dup {
			records[i] = rec
			continue
		}
		position[symbol] = len(records)
		records = append(records, rec)
	}

	if _, err := dec.Token(); err != nil {
		return nil, entities.Malformed("decode data: %v", err)
	}

	return records, nil
}

func (wr wireRecord) toRecord(symbol string, query entities.RateQuery) (entities.RateRecord, error) {
	switch {
	case wr.Satis == nil:
		return entities.RateRecord{}, entities.Malformed("data[%s].satis missing", symbol)
	case wr.Sembol == nil:
		return entities.RateRecord{}, entities.Malformed("data[%s].sembol missing", symbol)
	case wr.Degisim == nil:
		return entities.RateRecord{}, entities.Malformed("data[%s].degisim missing", symbol)
	}

	source := string(wr.Source)
	if source == "" && len(query.Categories) == 1 {
		source = query.Categories[0]
	}

	return entities.RateRecord{
		Symbol:         symbol,
		Buy:            wr.Alis.String(),
		Sell:           wr.Satis.String(),
		Unit:           wr.Sembol.String(),
		Rate:           wr.Oran.String(),
		ChangePercent:  wr.Degisim.String(),
		Direction:      entities.ParseDirection(string(wr.Yon)),
		SourceCategory: source,
	}, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
