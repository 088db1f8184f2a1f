package document

// EdgeInsets describes directional padding. Absent sides inherit nothing;
// they are simply unset.
type EdgeInsets struct {
	Top      *float64 `json:"top,omitempty"`
	Leading  *float64 `json:"leading,omitempty"`
	Bottom   *float64 `json:"bottom,omitempty"`
	Trailing *float64 `json:"trailing,omitempty"`
}

// Style is a sparse record of visual properties. Nil fields are "not set"
// and never override a value during merging. Inherits names a parent style
// in the same style table; chains are flattened by the style resolver.
type Style struct {
	Inherits string `json:"inherits,omitempty"`

	// Typography
	FontFamily *string  `json:"fontFamily,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	FontWeight *string  `json:"fontWeight,omitempty"`
	TextAlign  *string  `json:"textAlign,omitempty"`

	// Color
	TextColor       *string `json:"textColor,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	TintColor       *string `json:"tintColor,omitempty"`

	// Sizing
	Width     *float64 `json:"width,omitempty"`
	Height    *float64 `json:"height,omitempty"`
	MinWidth  *float64 `json:"minWidth,omitempty"`
	MinHeight *float64 `json:"minHeight,omitempty"`

	// Box
	Padding      *EdgeInsets `json:"padding,omitempty"`
	CornerRadius *float64    `json:"cornerRadius,omitempty"`
	BorderColor  *string     `json:"borderColor,omitempty"`
	BorderWidth  *float64    `json:"borderWidth,omitempty"`
	Opacity      *float64    `json:"opacity,omitempty"`

	// Shadow
	ShadowColor   *string  `json:"shadowColor,omitempty"`
	ShadowRadius  *float64 `json:"shadowRadius,omitempty"`
	ShadowOffsetX *float64 `json:"shadowOffsetX,omitempty"`
	ShadowOffsetY *float64 `json:"shadowOffsetY,omitempty"`
}

// IsZero reports whether no property is set (Inherits included).
func (s Style) IsZero() bool {
	return s == Style{}
}

// Merge returns s with every property set on override replacing the
// corresponding property of s. Override wins per individual property;
// properties unset on override survive from s. Inherits does not merge:
// it is a resolution instruction, not a visual property.
func (s Style) Merge(override Style) Style {
	out := s
	out.Inherits = ""

	if override.FontFamily != nil {
		out.FontFamily = override.FontFamily
	}
	if override.FontSize != nil {
		out.FontSize = override.FontSize
	}
	if override.FontWeight != nil {
		out.FontWeight = override.FontWeight
	}
	if override.TextAlign != nil {
		out.TextAlign = override.TextAlign
	}
	if override.TextColor != nil {
		out.TextColor = override.TextColor
	}
	if override.BackgroundColor != nil {
		out.BackgroundColor = override.BackgroundColor
	}
	if override.TintColor != nil {
		out.TintColor = override.TintColor
	}
	if override.Width != nil {
		out.Width = override.Width
	}
	if override.Height != nil {
		out.Height = override.Height
	}
	if override.MinWidth != nil {
		out.MinWidth = override.MinWidth
	}
	if override.MinHeight != nil {
		out.MinHeight = override.MinHeight
	}
	if override.Padding != nil {
		out.Padding = override.Padding
	}
	if override.CornerRadius != nil {
		out.CornerRadius = override.CornerRadius
	}
	if override.BorderColor != nil {
		out.BorderColor = override.BorderColor
	}
	if override.BorderWidth != nil {
		out.BorderWidth = override.BorderWidth
	}
	if override.Opacity != nil {
		out.Opacity = override.Opacity
	}
	if override.ShadowColor != nil {
		out.ShadowColor = override.ShadowColor
	}
	if override.ShadowRadius != nil {
		out.ShadowRadius = override.ShadowRadius
	}
	if override.ShadowOffsetX != nil {
		out.ShadowOffsetX = override.ShadowOffsetX
	}
	if override.ShadowOffsetY != nil {
		out.ShadowOffsetY = override.ShadowOffsetY
	}
	return out
}
