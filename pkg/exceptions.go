package pkg

import (
	"github.com/provide-io/erlc/pkg/expression"
	"github.com/provide-io/erlc/pkg/registry"
)

// Re-exported so callers of the facade need not import the sub-packages.
var (
	// Configuration errors 🔧
	ErrUnknownVersion = registry.ErrUnknownVersion

	// Expression errors 🧮
	ErrUnknownConstant = expression.ErrUnknownConstant
	ErrUnexpectedToken = expression.ErrUnexpectedToken
	ErrUnbalancedParen = expression.ErrUnbalancedParen
)
