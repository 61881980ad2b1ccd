package hierarchy

import "fmt"

// Role classifies what kind of widget an element is.
type Role int

const (
	RoleView Role = iota
	RoleText
	RoleEditText
	RoleButton
	RoleSwitch
	RoleImage
)

var roleNames = map[Role]string{
	RoleView:     "view",
	RoleText:     "text",
	RoleEditText: "edit-text",
	RoleButton:   "button",
	RoleSwitch:   "switch",
	RoleImage:    "image",
}

// String returns the role name.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	for role, name := range roleNames {
		if name == string(text) {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("unknown role %q", text)
}

// rendersText reports whether elements of this role draw their own text.
// Switches only count when their glyph locations are known.
func (r Role) rendersText(hasGlyphs bool) bool {
	switch r {
	case RoleText, RoleEditText, RoleButton:
		return true
	case RoleSwitch:
		return hasGlyphs
	default:
		return false
	}
}

// ScrollAxis is the direction in which a container scrolls.
type ScrollAxis int

const (
	ScrollNone ScrollAxis = iota
	ScrollVertical
	ScrollHorizontal
)

// String returns the axis name.
func (a ScrollAxis) String() string {
	switch a {
	case ScrollVertical:
		return "vertical"
	case ScrollHorizontal:
		return "horizontal"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a ScrollAxis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *ScrollAxis) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "none":
		*a = ScrollNone
	case "vertical":
		*a = ScrollVertical
	case "horizontal":
		*a = ScrollHorizontal
	default:
		return fmt.Errorf("unknown scroll axis %q", text)
	}
	return nil
}
