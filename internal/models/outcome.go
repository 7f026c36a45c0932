package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Envelope is the wrapper the rental backend puts around every response.
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message"`
}

// HasData reports whether the envelope carries a non-null payload.
func (e *Envelope) HasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}

type FailureKind string

const (
	KindNone            FailureKind = ""
	KindNoToken         FailureKind = "no_token"
	KindValidation      FailureKind = "validation"
	KindBackendRejected FailureKind = "backend_rejected"
	KindTransport       FailureKind = "transport"
	KindUnsupported     FailureKind = "unsupported"
)

// Outcome is what every resource call resolves to. A failed outcome always
// carries a message; a successful list or get always carries data.
type Outcome[T any] struct {
	Success bool
	Data    T
	Message string
	Kind    FailureKind
}

func Succeed[T any](data T, message string) Outcome[T] {
	return Outcome[T]{Success: true, Data: data, Message: message}
}

func Fail[T any](kind FailureKind, message string) Outcome[T] {
	return Outcome[T]{Kind: kind, Message: message}
}

func (o Outcome[T]) MarshalJSON() ([]byte, error) {
	type wire struct {
		Success bool        `json:"success"`
		Data    any         `json:"data,omitempty"`
		Message string      `json:"message,omitempty"`
		Kind    FailureKind `json:"kind,omitempty"`
	}
	w := wire{Success: o.Success, Message: o.Message, Kind: o.Kind}
	if o.Success {
		if _, void := any(o.Data).(struct{}); !void {
			w.Data = o.Data
		}
	}
	return json.Marshal(w)
}

// UploadResult is the asset host's description of a stored image.
type UploadResult struct {
	PublicID     string `json:"public_id"`
	SecureURL    string `json:"secure_url"`
	URL          string `json:"url,omitempty"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Format       string `json:"format"`
	ResourceType string `json:"resource_type"`
}

type UploadOutcome struct {
	Success bool          `json:"success"`
	Data    *UploadResult `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
	Kind    FailureKind   `json:"kind,omitempty"`
}

// Patch is a partial field set sent on update; the backend merges it.
type Patch map[string]any

// FlexString accepts a JSON string, number or null. The backend is not
// consistent about how it encodes postal codes.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	if f == "" {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(string(f))), nil
}

// FlexInt accepts a JSON number, a numeric string, an empty string or null.
// Form-entered numbers reach the backend, and come back, in either form.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	n, err := flexNumber(b)
	if err != nil {
		return err
	}
	v, err := n.Int64()
	if err != nil {
		fv, ferr := n.Float64()
		if ferr != nil {
			return fmt.Errorf("flex int %s: %w", b, err)
		}
		v = int64(fv)
	}
	*f = FlexInt(v)
	return nil
}

// FlexFloat is FlexInt for prices, amounts and coordinates.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	n, err := flexNumber(b)
	if err != nil {
		return err
	}
	v, err := n.Float64()
	if err != nil {
		return fmt.Errorf("flex float %s: %w", b, err)
	}
	*f = FlexFloat(v)
	return nil
}

func flexNumber(b []byte) (json.Number, error) {
	if string(b) == "null" {
		return "0", nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return "0", nil
		}
		return json.Number(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", err
	}
	return n, nil
}
