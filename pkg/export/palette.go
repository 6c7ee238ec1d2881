package export

// Fill is a resolved color pair for a shape or lane.
type Fill struct {
	Fill   string // background hex
	Stroke string // border hex
}

// Palette maps input color names to concrete fills. A Palette is immutable
// configuration: build one (or take [DefaultPalette]) and pass it into the
// exporters - never mutate a shared instance.
type Palette map[string]Fill

// DefaultPalette returns the built-in color table.
func DefaultPalette() Palette {
	return Palette{
		"blue":   {Fill: "#dae8fc", Stroke: "#6c8ebf"},
		"green":  {Fill: "#d5e8d4", Stroke: "#82b366"},
		"orange": {Fill: "#ffe6cc", Stroke: "#d79b00"},
		"red":    {Fill: "#f8cecc", Stroke: "#b85450"},
		"purple": {Fill: "#e1d5e7", Stroke: "#9673a6"},
		"yellow": {Fill: "#fff2cc", Stroke: "#d6b656"},
		"gray":   {Fill: "#f5f5f5", Stroke: "#666666"},
	}
}

// Resolve looks up a color name, falling back to gray for unknown or empty
// names so exporters never emit an invalid style.
func (p Palette) Resolve(name string) Fill {
	if f, ok := p[name]; ok {
		return f
	}
	return Fill{Fill: "#f5f5f5", Stroke: "#666666"}
}
