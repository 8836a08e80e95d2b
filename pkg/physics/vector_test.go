// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestVector2D_Arithmetic(t *testing.T) {
	a := Vector2D{X: 3, Y: 4}
	b := Vector2D{X: -1, Y: 2}

	if got := a.Add(b); got != (Vector2D{X: 2, Y: 6}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vector2D{X: 4, Y: 2}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vector2D{X: 6, Y: 8}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length = %f, want 5", got)
	}
	if got := a.LengthSquared(); got != 25 {
		t.Errorf("LengthSquared = %f, want 25", got)
	}
	if got := a.Distance(b); !floats.EqualWithinAbs(got, math.Sqrt(20), 1e-12) {
		t.Errorf("Distance = %f", got)
	}
}

func TestVector2D_Normalize(t *testing.T) {
	v := Vector2D{X: 0, Y: -7}
	n := v.Normalize()
	if n != (Vector2D{X: 0, Y: -1}) {
		t.Errorf("Normalize = %v", n)
	}

	zero := Vector2D{}
	if zero.Normalize() != (Vector2D{}) {
		t.Error("normalizing the zero vector should return the zero vector")
	}
}

func TestFromAngle_VerticalConvention(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		wantX float64
		wantY float64
	}{
		{name: "nose up", angle: 0, wantX: 0, wantY: 1},
		{name: "tilted right", angle: math.Pi / 2, wantX: 1, wantY: 0},
		{name: "tilted left", angle: -math.Pi / 2, wantX: -1, wantY: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := FromAngle(tt.angle, 1)
			if !floats.EqualWithinAbs(v.X, tt.wantX, 1e-12) || !floats.EqualWithinAbs(v.Y, tt.wantY, 1e-12) {
				t.Errorf("FromAngle(%f) = %v, want (%f, %f)", tt.angle, v, tt.wantX, tt.wantY)
			}
		})
	}
}
