// Package ciutil provides helpers for tests and tooling that need to know
// whether they run under CI and where the test MongoDB lives.
package ciutil
