// Package widgets implements the calculator views as plain view-model
// producers. Hosting surfaces (terminal, HTML) draw what the views hold;
// no widget knows how it is displayed.
package widgets

import (
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/erlc/pkg/registry"
)

// VersionOption is one entry of the version list.
type VersionOption struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// VersionSelector lists the known versions and notifies handlers when one
// is chosen.
type VersionSelector struct {
	reg      *registry.Registry
	active   string
	handlers []func(key string)
	logger   hclog.Logger
}

// NewVersionSelector starts on the registry's first version.
func NewVersionSelector(reg *registry.Registry, logger hclog.Logger) *VersionSelector {
	return &VersionSelector{
		reg:    reg,
		active: reg.DefaultVersion().Key,
		logger: named(logger, "version"),
	}
}

// ListVersions returns the versions in display order.
func (v *VersionSelector) ListVersions() []VersionOption {
	versions := v.reg.Versions()
	out := make([]VersionOption, 0, len(versions))
	for _, ver := range versions {
		out = append(out, VersionOption{
			Key:      ver.Key,
			Label:    ver.Label,
			Selected: ver.Key == v.active,
		})
	}
	return out
}

// Active is the currently selected version key.
func (v *VersionSelector) Active() string {
	return v.active
}

// OnVersionChange registers a handler. Handlers run in registration order.
func (v *VersionSelector) OnVersionChange(handler func(key string)) {
	v.handlers = append(v.handlers, handler)
}

// SelectVersion activates key and runs every handler with it.
func (v *VersionSelector) SelectVersion(key string) error {
	if _, err := v.reg.Version(key); err != nil {
		return err
	}
	v.active = key
	v.logger.Debug("version selected", "version", key)
	v.apply()
	return nil
}

// Init runs the handlers once with the current selection.
func (v *VersionSelector) Init() error {
	if _, err := v.reg.Version(v.active); err != nil {
		return err
	}
	v.apply()
	return nil
}

func (v *VersionSelector) apply() {
	for _, h := range v.handlers {
		h(v.active)
	}
}

func named(logger hclog.Logger, name string) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger.Named(name)
}
