// Package calculator wires the version selector, constant picker, level
// input and summary view to one synchronization hub.
package calculator

import (
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/erlc/pkg/hub"
	"github.com/provide-io/erlc/pkg/registry"
	"github.com/provide-io/erlc/pkg/widgets"
)

// Calculator is one interactive session. It is not safe for concurrent use.
type Calculator struct {
	reg *registry.Registry
	hub *hub.Hub

	Versions  *widgets.VersionSelector
	Constants *widgets.ConstantPicker
	Level     *widgets.LevelInput
	Summary   *widgets.SummaryView

	logger hclog.Logger
}

// Snapshot is everything a hosting surface needs to draw the session.
type Snapshot struct {
	State     hub.State               `json:"state"`
	Versions  []widgets.VersionOption `json:"versions"`
	Toggles   []widgets.Toggle        `json:"toggles"`
	LevelText string                  `json:"level_text"`
	Summary   widgets.Summary         `json:"summary"`
}

// New builds a session over reg and initializes it on the registry's first
// version.
func New(reg *registry.Registry, logger hclog.Logger) (*Calculator, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	h := hub.New(logger)
	c := &Calculator{
		reg:       reg,
		hub:       h,
		Versions:  widgets.NewVersionSelector(reg, logger),
		Constants: widgets.NewConstantPicker(reg, h, logger),
		Level:     widgets.NewLevelInput(reg, h, logger),
		Summary:   widgets.NewSummaryView(reg, h, logger),
		logger:    logger.Named("calculator"),
	}

	h.Subscribe(c.Constants)
	h.Subscribe(c.Level)
	h.Subscribe(c.Summary)

	c.Versions.OnVersionChange(c.versionChanged)
	if err := c.Versions.Init(); err != nil {
		return nil, err
	}
	return c, nil
}

// Registry is the constant table the session runs on.
func (c *Calculator) Registry() *registry.Registry {
	return c.reg
}

// Hub exposes the session hub for watchers.
func (c *Calculator) Hub() *hub.Hub {
	return c.hub
}

// SelectVersion switches the active version.
func (c *Calculator) SelectVersion(key string) error {
	return c.Versions.SelectVersion(key)
}

// Toggle flips a constant (or E_ALL) by name.
func (c *Calculator) Toggle(name string, checked bool) error {
	return c.Constants.ToggleByName(name, checked)
}

// EnterLevel types text into the level field.
func (c *Calculator) EnterLevel(text string) {
	c.Level.Edit(text)
}

// Snapshot captures the current view-models of every widget.
func (c *Calculator) Snapshot() Snapshot {
	return Snapshot{
		State:     c.hub.State(),
		Versions:  c.Versions.ListVersions(),
		Toggles:   c.Constants.Toggles(),
		LevelText: c.Level.Text(),
		Summary:   c.Summary.Summary(),
	}
}

func (c *Calculator) versionChanged(key string) {
	max, err := c.reg.MaxLevel(key)
	if err != nil {
		// the selector only hands out registered keys
		panic(err)
	}
	eAll, err := c.reg.EAllLevel(key)
	if err != nil {
		panic(err)
	}
	if err := c.Constants.ShowAvailableConstants(key); err != nil {
		panic(err)
	}

	c.hub.Reset(key, max, eAll)
	c.logger.Info("version changed", "version", key, "max", max)
	c.hub.Publish(hub.OriginNone)
}
