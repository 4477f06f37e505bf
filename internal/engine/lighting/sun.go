// Package lighting provides light directions for shading the globe.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/mars-globe/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a unit
// vector pointing towards the sun. Longitude rotates around Y starting at
// +Z; latitude is elevation above the XZ plane.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := longitude * math32.Pi / 180
	lat := latitude * math32.Pi / 180

	sinLon, cosLon := math32.Sincos(lon)
	sinLat, cosLat := math32.Sincos(lat)

	return math.Vec3{
		X: cosLat * sinLon,
		Y: sinLat,
		Z: cosLat * cosLon,
	}
}
