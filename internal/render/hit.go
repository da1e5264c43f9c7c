package render

import "github.com/samdwyer/raycaster/internal/rgb"

// HitKind is the outcome of casting a single ray.
type HitKind int

const (
	// HitNone means the ray left the map's maximum distance without meeting a wall.
	HitNone HitKind = iota
	// HitWall means the ray stopped at a wall tile.
	HitWall
)

// String returns a human-readable outcome name.
func (k HitKind) String() string {
	switch k {
	case HitNone:
		return "none"
	case HitWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Hit describes what a ray cast for one screen column found.
type Hit struct {
	Kind          HitKind
	Base          rgb.Color // Unlit wall colour
	Color         rgb.Color // Wall colour after lighting
	RawDistance   float64   // Ray length from the player to the wall
	Distance      float64   // Distance projected onto the view direction (fisheye corrected)
	WallIntensity float64   // Directional intensity of the wall face
	Light         float64   // Distance falloff in [MinimumLight, 1]
}
