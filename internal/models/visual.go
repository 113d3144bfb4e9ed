package models

// VisualKind identifies which variant a Visual holds.
type VisualKind int

const (
	VisualNone VisualKind = iota
	VisualImage
	VisualIcon
)

func (k VisualKind) String() string {
	switch k {
	case VisualImage:
		return "image"
	case VisualIcon:
		return "icon"
	default:
		return "none"
	}
}

// Visual is the picture attached to a Tab: raw image bytes, a named icon,
// or nothing. Only one variant can be held at a time.
type Visual struct {
	kind  VisualKind
	image []byte
	icon  string
}

// NoVisual returns the empty variant.
func NoVisual() Visual {
	return Visual{}
}

// ImageVisual wraps image bytes. Empty data yields NoVisual.
func ImageVisual(data []byte) Visual {
	if len(data) == 0 {
		return Visual{}
	}
	return Visual{kind: VisualImage, image: append([]byte(nil), data...)}
}

// IconVisual wraps an icon name. An empty name yields NoVisual.
func IconVisual(name string) Visual {
	if name == "" {
		return Visual{}
	}
	return Visual{kind: VisualIcon, icon: name}
}

// Kind returns the active variant.
func (v Visual) Kind() VisualKind {
	return v.kind
}

// Image returns the image bytes if v holds an image.
func (v Visual) Image() ([]byte, bool) {
	if v.kind != VisualImage {
		return nil, false
	}
	return v.image, true
}

// Icon returns the icon name if v holds an icon.
func (v Visual) Icon() (string, bool) {
	if v.kind != VisualIcon {
		return "", false
	}
	return v.icon, true
}

// IsZero reports whether v holds nothing.
func (v Visual) IsZero() bool {
	return v.kind == VisualNone
}

func (v Visual) clone() Visual {
	if v.kind == VisualImage {
		return ImageVisual(v.image)
	}
	return v
}
