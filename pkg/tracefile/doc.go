// Package tracefile parses debugger stop expectation traces.
//
// A trace file is a line oriented text file describing the sequence of
// stops a debugger is expected to make while stepping through a test
// program, together with the variables expected to be visible at each
// stop. Trace files are written by hand next to the test program they
// describe and are loaded once per test run; the parsed representation
// is immutable and drives the debugger session.
package tracefile
