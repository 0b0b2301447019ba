package ballpit

// ForceFunc evaluates a force for a ball of the given radius.
type ForceFunc func(size float64) Vector

// Force is a named, toggleable contribution to a ball's acceleration.
type Force struct {
	Name    string
	Value   ForceFunc
	Enabled bool
}

// ConstantForce ignores the ball size.
func ConstantForce(name string, value Vector, enabled bool) Force {
	return Force{
		Name:    name,
		Value:   func(float64) Vector { return value },
		Enabled: enabled,
	}
}

// ScaledForce grows linearly with the ball size, so bigger balls fall faster.
func ScaledForce(name string, value Vector, enabled bool) Force {
	return Force{
		Name:    name,
		Value:   func(size float64) Vector { return value.Mult(size) },
		Enabled: enabled,
	}
}

func NewForce(name string, value ForceFunc, enabled bool) Force {
	return Force{Name: name, Value: value, Enabled: enabled}
}

// Evaluate returns the contribution for a ball of the given size. Disabled
// forces and forces without a value contribute nothing.
func (f *Force) Evaluate(size float64) Vector {
	if !f.Enabled || f.Value == nil {
		return Vector{}
	}
	return f.Value(size)
}

// Forces is an ordered list of forces with unique names.
type Forces struct {
	list []*Force
}

func NewForces(forces ...Force) *Forces {
	fs := &Forces{}
	for _, f := range forces {
		fs.Add(f)
	}
	return fs
}

// DefaultForces is the stock set offered by the sandbox. Only gravity starts
// enabled.
func DefaultForces() *Forces {
	return NewForces(
		ScaledForce("Gravity", Vector{0, 0.1}, true),
		ScaledForce("Anti-Gravity", Vector{0, -0.1}, false),
		ScaledForce("Right Force", Vector{0.1, 0}, false),
		ScaledForce("Left Force", Vector{-0.1, 0}, false),
	)
}

// Add appends force. When a force with the same name exists only its Enabled
// flag is updated; the stored value is kept.
func (fs *Forces) Add(force Force) {
	if existing := fs.Get(force.Name); existing != nil {
		existing.Enabled = force.Enabled
		return
	}
	f := force
	fs.list = append(fs.list, &f)
}

func (fs *Forces) Remove(name string) bool {
	for i, f := range fs.list {
		if f.Name == name {
			fs.list = append(fs.list[:i], fs.list[i+1:]...)
			return true
		}
	}
	return false
}

func (fs *Forces) SetEnabled(name string, enabled bool) bool {
	f := fs.Get(name)
	if f == nil {
		return false
	}
	f.Enabled = enabled
	return true
}

func (fs *Forces) Get(name string) *Force {
	for _, f := range fs.list {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Contribution sums every enabled force for a ball of the given size.
func (fs *Forces) Contribution(size float64) Vector {
	var sum Vector
	for _, f := range fs.list {
		sum = sum.Add(f.Evaluate(size))
	}
	return sum
}

func (fs *Forces) Each(f func(*Force)) {
	for _, force := range fs.list {
		f(force)
	}
}

func (fs *Forces) Len() int {
	return len(fs.list)
}

func (fs *Forces) Names() []string {
	names := make([]string, len(fs.list))
	for i, f := range fs.list {
		names[i] = f.Name
	}
	return names
}
