// Package core holds the small abstractions shared across bv packages:
// filesystem access, serialization and git operations. Production
// implementations live next to in-memory mocks used by the tests.
package core
