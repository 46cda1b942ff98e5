package gen

import "github.com/dave/jennifer/jen"

// Customization contributes fragments to the sections of one surface.
// Section must return nil for sections it does not handle.
type Customization[S Section] interface {
	Section(section S) Writable
}

// CustomizationFunc is an adapter to allow the use of ordinary functions as
// customizations.
type CustomizationFunc[S Section] func(section S) Writable

// Section calls f(section).
func (f CustomizationFunc[S]) Section(section S) Writable { return f(section) }

type (
	// ConfigCustomization customizes the generated service config.
	ConfigCustomization = Customization[ServiceConfigSection]
	// OperationCustomization customizes the request pipeline of an operation.
	OperationCustomization = Customization[OperationSection]
)

// AdHocCustomization handles one ad-hoc event.
type AdHocCustomization interface {
	Customization[AdHocSection]
	// Event returns the SectionName of the handled section.
	Event() string
}

type adHoc[S AdHocSection] struct {
	fn func(S) Writable
}

// AdHoc returns an AdHocCustomization calling fn for sections of type S and
// contributing nothing for every other ad-hoc section.
func AdHoc[S AdHocSection](fn func(section S) Writable) AdHocCustomization {
	return adHoc[S]{fn: fn}
}

func (a adHoc[S]) Section(section AdHocSection) Writable {
	switch s := section.(type) {
	case S:
		return a.fn(s)
	default:
		return nil
	}
}

func (a adHoc[S]) Event() string {
	var zero S
	return zero.SectionName()
}

// RenderConfigSection renders the contribution of every customization to
// section, in list order. Empty contributions are skipped. It reports whether
// anything was rendered.
func RenderConfigSection(g *jen.Group, customizations []ConfigCustomization, section ServiceConfigSection) bool {
	return renderSection[ServiceConfigSection](g, customizations, section)
}

// RenderOperationSection is RenderConfigSection for the operation surface.
func RenderOperationSection(g *jen.Group, customizations []OperationCustomization, section OperationSection) bool {
	return renderSection[OperationSection](g, customizations, section)
}

func renderSection[S Section](g *jen.Group, customizations []Customization[S], section S) bool {
	rendered := false
	for _, c := range customizations {
		w := c.Section(section)
		if w.IsEmpty() {
			continue
		}
		w.Render(g)
		rendered = true
	}
	return rendered
}

// RenderAdHoc renders every ad-hoc customization registered for the event of
// section, in list order.
func RenderAdHoc(g *jen.Group, customizations []AdHocCustomization, section AdHocSection) bool {
	rendered := false
	for _, c := range customizations {
		if c.Event() != section.SectionName() {
			continue
		}
		w := c.Section(section)
		if w.IsEmpty() {
			continue
		}
		w.Render(g)
		rendered = true
	}
	return rendered
}
