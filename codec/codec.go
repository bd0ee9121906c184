// Package codec converts values to and from the string form kept in a store.
//
// A value written without expiry is stored as its bare JSON encoding. A value
// written with expiry is wrapped in an envelope object:
//
//	{"value": <V>, "stash@storage_expire": <epoch ms>}
//
// An object value that already carries the marker field is indistinguishable
// from an envelope on read.
package codec

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ExpiryMarker is the reserved envelope field holding the expiry timestamp.
const ExpiryMarker = "stash@storage_expire"

type envelope struct {
	Value  any   `json:"value"`
	Expire int64 `json:"stash@storage_expire"`
}

// State classifies a decoded raw entry.
type State int

const (
	// Absent means there was nothing to decode.
	Absent State = iota
	// Bare is a JSON value stored without an envelope.
	Bare
	// Live is an envelope whose expiry is still in the future.
	Live
	// Expired is an envelope whose expiry has passed. The caller deletes it.
	Expired
	// Foreign is a raw string that is not JSON, returned as-is.
	Foreign
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Bare:
		return "bare"
	case Live:
		return "live"
	case Expired:
		return "expired"
	case Foreign:
		return "foreign"
	default:
		return "unknown"
	}
}

// Entry is the result of Decode. Value holds the JSON of the unwrapped value
// for Bare and Live entries; Raw holds the original string for Foreign ones.
type Entry struct {
	State     State
	Value     json.RawMessage
	Raw       string
	ExpiresAt int64
}

// Encode serializes value, wrapping it in an envelope when hasExpiry is set.
func Encode(value any, expiresAt int64, hasExpiry bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if hasExpiry {
		data, err = json.Marshal(envelope{Value: value, Expire: expiresAt})
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode classifies raw against nowMillis.
func Decode(raw string, nowMillis int64) Entry {
	if raw == "" {
		return Entry{State: Absent}
	}

	data := []byte(raw)
	if !json.Valid(data) {
		return Entry{State: Foreign, Raw: raw}
	}

	var fields map[string]json.RawMessage
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) && json.Unmarshal(data, &fields) == nil {
		if marker, ok := fields[ExpiryMarker]; ok && truthy(marker) {
			value := fields["value"]
			if value == nil {
				value = json.RawMessage("null")
			}

			expiresAt, ok := markerMillis(marker)
			if !ok {
				// a truthy marker that is not a number can never be in the future
				return Entry{State: Expired, Value: value}
			}
			if float64(nowMillis) < expiresAt {
				return Entry{State: Live, Value: value, ExpiresAt: clampMillis(expiresAt)}
			}
			return Entry{State: Expired, Value: value, ExpiresAt: clampMillis(expiresAt)}
		}
	}

	return Entry{State: Bare, Value: json.RawMessage(data)}
}

// markerMillis reads the marker as a number. A JSON string holding a number
// counts, since foreign writers may have stored the timestamp as text.
func markerMillis(v json.RawMessage) (float64, bool) {
	var f float64
	if json.Unmarshal(v, &f) == nil {
		return f, true
	}
	var s string
	if json.Unmarshal(v, &s) != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func clampMillis(f float64) int64 {
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

func truthy(v json.RawMessage) bool {
	switch string(bytes.TrimSpace(v)) {
	case "", "null", "false", "0", `""`, "-0":
		return false
	}
	var f float64
	if json.Unmarshal(v, &f) == nil {
		return f != 0
	}
	return true
}
