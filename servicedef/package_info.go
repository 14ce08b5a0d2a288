// Package servicedef describes the wire contract of the interview service: the logical
// endpoint names the harness addresses, the JSON payloads it sends, the response envelope
// it expects back, and the error messages the suite pins.
//
// Both the test cases and the stub service import this package, so a change to the
// contract is made in one place.
package servicedef
