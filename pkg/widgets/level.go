package widgets

import (
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/erlc/pkg/hub"
	"github.com/provide-io/erlc/pkg/registry"
)

// LevelInput is the free-text field mirroring the selected level.
type LevelInput struct {
	reg    *registry.Registry
	hub    *hub.Hub
	text   string
	logger hclog.Logger
}

func NewLevelInput(reg *registry.Registry, h *hub.Hub, logger hclog.Logger) *LevelInput {
	return &LevelInput{
		reg:    reg,
		hub:    h,
		logger: named(logger, "level"),
	}
}

func (l *LevelInput) Origin() hub.Origin { return hub.OriginLevel }

// Render writes the selected level into the field as decimal text.
func (l *LevelInput) Render() {
	l.text = l.hub.Selected().String()
}

// Text is the current field contents.
func (l *LevelInput) Text() string {
	return l.text
}

// Edit handles a user edit of the field. Text that is not a level of the
// active version resets the selection to 0; the field keeps what was typed.
func (l *LevelInput) Edit(text string) {
	l.text = text

	level, ok := l.parse(text)
	if !ok {
		l.logger.Debug("invalid level, resetting", "input", text)
		level = 0
	}
	if err := l.hub.SetSelected(hub.OriginLevel, level); err != nil {
		// parse already checked the active version's range
		l.logger.Error("level write refused", "level", level, "error", err)
		return
	}
	l.hub.Publish(hub.OriginLevel)
}

func (l *LevelInput) parse(text string) (registry.Level, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, false
	}
	level := registry.Level(n)
	if !l.reg.IsLevelValid(level) {
		return 0, false
	}
	return level, level.SubmaskOf(l.hub.State().MaxLevel)
}
