package widgets

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/erlc/pkg/hub"
	"github.com/provide-io/erlc/pkg/registry"
)

// ErrUnknownToggle is returned when toggling a value or name that is not
// currently rendered.
var ErrUnknownToggle = errors.New("❌ no such toggle")

// Toggle is the view-model of one constant checkbox.
type Toggle struct {
	Name        string         `json:"name"`
	Value       registry.Level `json:"value"`
	Description string         `json:"description"`
	Aggregate   bool           `json:"aggregate"`
	Checked     bool           `json:"checked"`
}

// BuildToggles returns the toggles of a version as they render for level:
// one per active constant, then the synthetic E_ALL toggle.
func BuildToggles(reg *registry.Registry, key string, level registry.Level) ([]Toggle, error) {
	constants, err := reg.ConstantsForVersion(key)
	if err != nil {
		return nil, err
	}
	eAll, err := reg.EAllLevel(key)
	if err != nil {
		return nil, err
	}

	toggles := make([]Toggle, 0, len(constants)+1)
	for _, c := range constants {
		toggles = append(toggles, Toggle{
			Name:        c.Name,
			Value:       c.Value,
			Description: c.Description,
			Checked:     level.Has(c.Value),
		})
	}
	toggles = append(toggles, Toggle{
		Name:        registry.EAllName,
		Value:       eAll,
		Description: registry.EAllDescription,
		Aggregate:   true,
		Checked:     level.Has(eAll),
	})
	return toggles, nil
}

// ConstantPicker renders one toggle per constant of the active version and
// writes the selected level when one is flipped.
type ConstantPicker struct {
	reg     *registry.Registry
	hub     *hub.Hub
	toggles []Toggle
	logger  hclog.Logger
}

func NewConstantPicker(reg *registry.Registry, h *hub.Hub, logger hclog.Logger) *ConstantPicker {
	return &ConstantPicker{
		reg:    reg,
		hub:    h,
		logger: named(logger, "constants"),
	}
}

func (p *ConstantPicker) Origin() hub.Origin { return hub.OriginConstants }

// ShowAvailableConstants drops every toggle and rebuilds the list for key.
// Checked states are left for the next Render.
func (p *ConstantPicker) ShowAvailableConstants(key string) error {
	p.toggles = nil
	toggles, err := BuildToggles(p.reg, key, 0)
	if err != nil {
		return err
	}
	p.toggles = toggles
	p.logger.Debug("constants shown", "version", key, "count", len(toggles))
	return nil
}

// Render refreshes every checked state from the selected level.
func (p *ConstantPicker) Render() {
	p.sync(p.hub.Selected())
}

// Toggles returns a copy of the rendered toggles.
func (p *ConstantPicker) Toggles() []Toggle {
	return append([]Toggle(nil), p.toggles...)
}

// Toggle flips the rendered toggle carrying value into the checked state
// given, then raises selectedLevelChanged from the picker.
func (p *ConstantPicker) Toggle(value registry.Level, checked bool) error {
	if !p.rendered(value) {
		return ErrUnknownToggle
	}

	level := p.hub.Selected()
	if checked {
		level = level.Set(value)
	} else {
		level = level.Clear(value)
	}
	if err := p.hub.SetSelected(hub.OriginConstants, level); err != nil {
		return err
	}
	p.logger.Trace("toggled", "value", value, "checked", checked, "level", level)

	// The list is not rebuilt for its own change, only the checked states.
	p.sync(level)
	p.hub.Publish(hub.OriginConstants)
	return nil
}

// ToggleByName flips the rendered toggle with the given name.
func (p *ConstantPicker) ToggleByName(name string, checked bool) error {
	for _, t := range p.toggles {
		if t.Name == name {
			return p.Toggle(t.Value, checked)
		}
	}
	return ErrUnknownToggle
}

func (p *ConstantPicker) rendered(value registry.Level) bool {
	for _, t := range p.toggles {
		if t.Value == value {
			return true
		}
	}
	return false
}

func (p *ConstantPicker) sync(level registry.Level) {
	for i := range p.toggles {
		p.toggles[i].Checked = level.Has(p.toggles[i].Value)
	}
}
