// Package testsupport holds helpers shared by tests: temp-directory configs
// and small file fixtures.
package testsupport
