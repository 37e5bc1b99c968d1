package widgets

import (
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/erlc/pkg/hub"
	"github.com/provide-io/erlc/pkg/registry"
)

// Summary is the view-model of the preview area.
type Summary struct {
	// ErrorReporting is the argument for error_reporting().
	ErrorReporting string `json:"error_reporting"`
	// PHPIni is the value for the error_reporting ini directive.
	PHPIni string `json:"php_ini"`
	// Raw is the decimal level, as used where constants are not available.
	Raw string `json:"raw"`
	// Htaccess is the Apache directive line for Raw.
	Htaccess string `json:"htaccess"`
	// Constants lists the selected constants in registry order.
	Constants []registry.Constant `json:"constants"`
}

// Expression renders selected as a symbolic expression relative to the
// active version's max and E_ALL levels.
//
// When more than half of the version's constants are set the expression is
// written against E_ALL, adding constants E_ALL lacks and masking out the
// E_ALL members that are unset. Otherwise the set constants are OR-ed.
// An empty selection renders as "0".
func Expression(reg *registry.Registry, selected, max, eAll registry.Level) string {
	set := reg.ConstantsSetInLevel(selected)
	all := reg.ConstantsSetInLevel(max)

	var sb strings.Builder
	if len(set)*2 > len(all) {
		sb.WriteString(registry.EAllName)
		for _, name := range all {
			inSelection := reg.IsConstantSetInLevel(selected, name)
			inEAll := reg.IsConstantSetInLevel(eAll, name)
			switch {
			case inSelection && !inEAll:
				sb.WriteString(" | " + name)
			case !inSelection && inEAll:
				sb.WriteString(" & ~" + name)
			}
		}
	} else {
		sb.WriteString(strings.Join(set, " | "))
	}

	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}

// SummaryView derives the preview texts from the selected level.
type SummaryView struct {
	reg     *registry.Registry
	hub     *hub.Hub
	summary Summary
	logger  hclog.Logger
}

func NewSummaryView(reg *registry.Registry, h *hub.Hub, logger hclog.Logger) *SummaryView {
	return &SummaryView{
		reg:    reg,
		hub:    h,
		logger: named(logger, "summary"),
	}
}

func (s *SummaryView) Origin() hub.Origin { return hub.OriginSummary }

// Render recomputes every preview slot. It never writes state.
func (s *SummaryView) Render() {
	st := s.hub.State()
	expr := Expression(s.reg, st.SelectedLevel, st.MaxLevel, st.EAllLevel)

	var constants []registry.Constant
	for _, name := range s.reg.ConstantsSetInLevel(st.SelectedLevel) {
		c, _ := s.reg.Constant(name)
		constants = append(constants, c)
	}

	s.summary = Summary{
		ErrorReporting: expr,
		PHPIni:         expr,
		Raw:            st.SelectedLevel.String(),
		Htaccess:       "php_value error_reporting " + st.SelectedLevel.String(),
		Constants:      constants,
	}
	s.logger.Trace("summary rendered", "expression", expr)
}

// Summary returns the last rendered preview.
func (s *SummaryView) Summary() Summary {
	out := s.summary
	out.Constants = append([]registry.Constant(nil), s.summary.Constants...)
	return out
}
