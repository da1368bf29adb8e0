package geometry

// Robot returns the demo robot parts in their canonical merge order.
// Stored paint edits for the "robot" model depend on this exact order.
func Robot() []Primitive {
	part := func(name string, p Primitive, x, y, z float32) Primitive {
		p.Name = name
		p.Translate(x, y, z)
		return p
	}

	return []Primitive{
		part("body", Box(1, 1.2, 0.8), 0, 0, 0),
		part("head", Box(0.8, 0.7, 0.7), 0, 1, 0),
		part("eye.left", Sphere(0.12, 16, 16), -0.2, 1.1, 0.35),
		part("eye.right", Sphere(0.12, 16, 16), 0.2, 1.1, 0.35),
		part("antenna", Cylinder(0.03, 0.03, 0.3, 8), 0, 1.5, 0),
		part("antenna.ball", Sphere(0.08, 16, 16), 0, 1.7, 0),
		part("arm.left", Cylinder(0.1, 0.08, 0.8, 12), -0.7, 0.1, 0),
		part("arm.right", Cylinder(0.1, 0.08, 0.8, 12), 0.7, 0.1, 0),
		part("leg.left", Cylinder(0.12, 0.1, 0.8, 12), -0.25, -1, 0),
		part("leg.right", Cylinder(0.12, 0.1, 0.8, 12), 0.25, -1, 0),
		part("foot.left", Box(0.25, 0.1, 0.35), -0.25, -1.45, 0.05),
		part("foot.right", Box(0.25, 0.1, 0.35), 0.25, -1.45, 0.05),
	}
}

// Models maps model names to their primitive sets.
var Models = map[string]func() []Primitive{
	"robot": Robot,
	"cube": func() []Primitive {
		return []Primitive{Box(1, 1, 1)}
	},
}
