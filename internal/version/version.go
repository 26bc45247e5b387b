// ABOUTME: Version and product identification constants
// ABOUTME: Shown in the TUI header, logs and remote hello messages
package version

import "fmt"

const (
	// Version is the application version
	Version = "0.3.0"

	// Product is the product name
	Product = "wavecast"

	// Manufacturer is the manufacturer name
	Manufacturer = "Resonate Protocol"
)

// String returns "product version" for banners
func String() string {
	return fmt.Sprintf("%s %s", Product, Version)
}
