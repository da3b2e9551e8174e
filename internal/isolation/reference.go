package isolation

// Reference is an optional reference color. It distinguishes "no color
// selected yet" from any concrete color value, which all remain valid
// references.
type Reference struct {
	color Color
	ok    bool
}

func NoReference() Reference {
	return Reference{}
}

func ReferenceTo(c Color) Reference {
	return Reference{
		color: c,
		ok:    true,
	}
}

// Resolve returns the carried color, or ErrNoReference when no color
// was ever selected.
func (r Reference) Resolve() (Color, error) {
	if !r.ok {
		return Color{}, ErrNoReference
	}
	return r.color, nil
}
