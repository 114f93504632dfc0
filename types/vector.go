package types

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/math/f32"
)

type Vec2 f32.Vec2
type Vec3 f32.Vec3

// Define a 2 component vector.
func XY(x, y float32) Vec2 {
	return Vec2{x, y}
}

// Define a 3 component vector.
func XYZ(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Subtract a vector.
func (v Vec2) Sub(v2 Vec2) Vec2 {
	return Vec2{v[0] - v2[0], v[1] - v2[1]}
}

// Add a vector.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Multiply a 3 component vector with a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Parse a vector from a comma separated "x,y,z" string. Missing trailing
// components default to zero.
func ParseVec3(s string) (Vec3, error) {
	var out Vec3
	s = strings.TrimSpace(s)
	if s == "" {
		return out, nil
	}

	tokens := strings.Split(s, ",")
	if len(tokens) > 3 {
		return out, fmt.Errorf("vec3: expected at most 3 components; got %d", len(tokens))
	}

	for i, tok := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 32)
		if err != nil {
			return out, fmt.Errorf("vec3: invalid component %d (%q): %w", i, tok, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}
