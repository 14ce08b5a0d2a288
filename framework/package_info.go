// Package framework contains test harness infrastructure that does not depend on what
// is being tested.
//
// The general model is:
//
// 1. The harness talks to a service under test over HTTP. The service is external: it is
// started separately, and the harness only waits for it to answer (AwaitService).
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier, to accumulate
// success/failure results, to register teardown with Defer, and to run subtests either
// sequentially or in parallel.
//
// The domain-specific code that knows what is being tested is responsible for building
// requests, providing a domain-specific test API on top of the test context, and the
// test cases themselves.
package framework
