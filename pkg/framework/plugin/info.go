// Package plugin defines the boundary between a host and an instrument:
// the metadata a host queries and the processor contract it drives.
package plugin

// Category values a host understands.
const (
	CategoryInstrument = "Instrument"
	CategoryFx         = "Fx"
)

// Info contains the plugin metadata a host queries before processing.
type Info struct {
	Name     string // Display name
	Vendor   string // Company/developer name
	Version  string // Semantic version (e.g., "1.0.0")
	Category string // One of the Category constants
	UniqueID int32  // Host-facing unique identifier
}
