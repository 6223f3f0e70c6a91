package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Primitive binds a world-space shape to an optional material.
// A nil Material renders with the default white Lambertian.
type Primitive struct {
	Shape    geometry.Shape
	Material material.Material
}

// NewPrimitive bakes transform into the shape so intersection happens in world space
func NewPrimitive(shape geometry.Shape, mat material.Material, transform core.Transform) Primitive {
	if shape != nil && !transform.IsIdentity() {
		shape = shape.Transformed(transform)
	}
	return Primitive{Shape: shape, Material: mat}
}

// Interaction is a surface hit together with the primitive that produced it
type Interaction struct {
	core.SurfaceInteraction
	Primitive *Primitive
}

// BaseColor returns the shape's own base color at the hit, if it carries a texture
func (i Interaction) BaseColor() (core.Spectrum, bool) {
	if i.Primitive == nil {
		return core.White, false
	}
	textured, ok := i.Primitive.Shape.(geometry.Textured)
	if !ok {
		return core.White, false
	}
	return textured.BaseColorAt(i.UV, i.Point)
}
