package pkg

import (
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/erlc/pkg/calculator"
	"github.com/provide-io/erlc/pkg/expression"
	"github.com/provide-io/erlc/pkg/registry"
)

// Describe runs a one-shot session: select version, type level, and return
// what the views show. An empty level keeps the version's maximum.
func Describe(reg *registry.Registry, version, level string, logger hclog.Logger) (calculator.Snapshot, error) {
	c, err := calculator.New(reg, logger)
	if err != nil {
		return calculator.Snapshot{}, err
	}
	if version != "" {
		if err := c.SelectVersion(version); err != nil {
			return calculator.Snapshot{}, err
		}
	}
	if level != "" {
		c.EnterLevel(level)
	}
	return c.Snapshot(), nil
}

// Evaluate turns a symbolic expression into a session snapshot. The result
// goes through the level field, so a level outside the version resets to 0.
func Evaluate(reg *registry.Registry, version, expr string, logger hclog.Logger) (calculator.Snapshot, error) {
	c, err := calculator.New(reg, logger)
	if err != nil {
		return calculator.Snapshot{}, err
	}
	if version != "" {
		if err := c.SelectVersion(version); err != nil {
			return calculator.Snapshot{}, err
		}
	}
	level, err := expression.Evaluate(reg, c.Versions.Active(), expr)
	if err != nil {
		return calculator.Snapshot{}, err
	}
	c.EnterLevel(level.String())
	return c.Snapshot(), nil
}
