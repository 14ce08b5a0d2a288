// Package interviewtests contains the contract test suite for the interview service: the
// test API built on the framework package, the authentication helper, and the test
// cases for every endpoint.
//
// Tests are plain functions taking a *T. Assertions use testify's assert and require
// packages with the *T in place of a *testing.T.
package interviewtests
