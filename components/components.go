// Package components holds the ECS component types for trail agents.
package components

// Agent tags an entity as a trail agent and records its spawn index.
// The index is stable for the life of the run.
type Agent struct {
	Index uint32
}
