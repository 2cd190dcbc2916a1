// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the domain store and called by handlers.
// The health ports are implemented by platform/health and by any component
// that reports readiness.
package ports
