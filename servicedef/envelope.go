package servicedef

import (
	"encoding/json"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Business status codes carried in the envelope. They mirror the transport status.
const (
	StatusOK         = 200
	StatusBadRequest = 400
)

// Envelope is the JSON body returned by every endpoint of the service.
//
// Status is the business status, which is logically distinct from the HTTP status even
// though the two agree for every response in this contract. Error is empty on success.
// Data is whatever payload the endpoint returns, if any.
type Envelope struct {
	Status int           `json:"status"`
	Data   ldvalue.Value `json:"data"`
	Msg    string        `json:"msg,omitempty"`
	Error  string        `json:"error"`

	raw ldvalue.Value
}

// UnmarshalJSON requires the body to be a JSON object. Fields other than status, data,
// msg and error are kept and can be checked with Has.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var v ldvalue.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Type() != ldvalue.ObjectType {
		return fmt.Errorf("expected a JSON object but got %s", v.Type())
	}
	*e = Envelope{
		Status: v.GetByKey("status").IntValue(),
		Data:   v.GetByKey("data"),
		Msg:    v.GetByKey("msg").StringValue(),
		Error:  v.GetByKey("error").StringValue(),
		raw:    v,
	}
	return nil
}

// Has reports whether the body contained the given top-level key, even with a null value.
func (e Envelope) Has(key string) bool {
	for _, k := range e.raw.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// DataString returns Data as a string, formatting it if the service sent a number.
func (e Envelope) DataString() string {
	switch e.Data.Type() {
	case ldvalue.StringType:
		return e.Data.StringValue()
	case ldvalue.NumberType:
		if e.Data.IsInt() {
			return fmt.Sprintf("%d", e.Data.IntValue())
		}
		return e.Data.JSONString()
	default:
		return ""
	}
}

func (e Envelope) String() string {
	if e.raw.IsNull() {
		data, _ := json.Marshal(e)
		return string(data)
	}
	return e.raw.JSONString()
}
