package hub

import "fmt"

// Origin identifies the component that raised a selectedLevelChanged signal.
type Origin uint8

const (
	OriginNone      Origin = iota // document-level dispatch, every view renders
	OriginVersion                 // version selector
	OriginConstants               // constant picker
	OriginLevel                   // raw level input
	OriginSummary                 // preview area
)

func (o Origin) String() string {
	switch o {
	case OriginNone:
		return "none"
	case OriginVersion:
		return "version"
	case OriginConstants:
		return "constants"
	case OriginLevel:
		return "level"
	case OriginSummary:
		return "summary"
	default:
		return fmt.Sprintf("origin(%d)", uint8(o))
	}
}
