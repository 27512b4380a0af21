package domain

// Zoom bounds, in percent.
const (
	MinZoom     = 50
	MaxZoom     = 150
	DefaultZoom = 100
)

// DeviceMode selects the preview width of the canvas.
type DeviceMode string

// Available device modes.
const (
	DeviceDesktop DeviceMode = "desktop"
	DeviceTablet  DeviceMode = "tablet"
	DeviceMobile  DeviceMode = "mobile"
)

// AllDeviceModes returns every device mode.
func AllDeviceModes() []DeviceMode {
	return []DeviceMode{DeviceDesktop, DeviceTablet, DeviceMobile}
}

// IsValid returns true if the device mode is recognised.
func (m DeviceMode) IsValid() bool {
	switch m {
	case DeviceDesktop, DeviceTablet, DeviceMobile:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m DeviceMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m DeviceMode) Description() string {
	switch m {
	case DeviceDesktop:
		return "Desktop (1280px)"
	case DeviceTablet:
		return "Tablet (768px)"
	case DeviceMobile:
		return "Mobile (375px)"
	default:
		return "Unknown"
	}
}

// Viewport is the transient canvas presentation state.
type Viewport struct {
	Zoom   int        `json:"zoom"`
	Device DeviceMode `json:"device"`
}

// DefaultViewport returns a desktop viewport at 100%.
func DefaultViewport() Viewport {
	return Viewport{Zoom: DefaultZoom, Device: DeviceDesktop}
}

// ClampZoom limits zoom to [MinZoom, MaxZoom].
func ClampZoom(zoom int) int {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
