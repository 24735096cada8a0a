// Package ciutil reads the environment variables that steer test runs:
// which PostgreSQL server integration tests use and whether its absence
// fails the run or skips the tests.
package ciutil
