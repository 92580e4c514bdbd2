package domain

import "strings"

// Coordinates describes an element's bounding box in page pixels.
type Coordinates struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the bounding-box area in square pixels.
func (c Coordinates) Area() float64 {
	return c.Width * c.Height
}

// Center returns the midpoint of the bounding box.
func (c Coordinates) Center() (float64, float64) {
	return c.X + c.Width/2, c.Y + c.Height/2
}

// DOMElement is one scraped page element. It is produced once per capture
// by the DOM extractor and treated as immutable input by every component
// in the prediction pipeline.
type DOMElement struct {
	ID        string `json:"id,omitempty"`
	OxID      string `json:"oxId,omitempty"` // alternate stable ID assigned by the extractor
	TagName   string `json:"tagName"`
	ClassName string `json:"className,omitempty"`
	Text      string `json:"text,omitempty"`
	Href      string `json:"href,omitempty"`

	IsVisible        bool `json:"isVisible"`
	IsInteractive    bool `json:"isInteractive"`
	IsAboveFold      bool `json:"isAboveFold"`
	HasButtonStyling bool `json:"hasButtonStyling"`

	Coordinates Coordinates `json:"coordinates"`

	// Styling / behavioral flags, optional.
	HasHighContrast bool              `json:"hasHighContrast,omitempty"`
	IsAutoRotating  bool              `json:"isAutoRotating,omitempty"`
	IsSticky        bool              `json:"isSticky,omitempty"`
	ZIndex          int               `json:"zIndex,omitempty"`
	Style           map[string]string `json:"style,omitempty"`

	// Form-specific fields, optional.
	Type            string `json:"type,omitempty"`
	Required        bool   `json:"required,omitempty"`
	Label           string `json:"label,omitempty"`
	Placeholder     string `json:"placeholder,omitempty"`
	HasAutocomplete bool   `json:"hasAutocomplete,omitempty"`
	Pattern         string `json:"pattern,omitempty"`
	MinLength       int    `json:"minLength,omitempty"`
	MaxLength       int    `json:"maxLength,omitempty"`
	FormAction      string `json:"formAction,omitempty"`

	DistanceFromTop float64 `json:"distanceFromTop"`
}

// formFieldTags lists tag names that carry form input semantics.
var formFieldTags = map[string]bool{
	"input":    true,
	"select":   true,
	"textarea": true,
}

// IsFormField reports whether the element is a form input.
func (e *DOMElement) IsFormField() bool {
	return formFieldTags[strings.ToLower(e.TagName)]
}

// IsLink reports whether the element is an anchor with a destination.
func (e *DOMElement) IsLink() bool {
	return strings.EqualFold(e.TagName, "a") && e.Href != ""
}

// IsButton reports whether the element behaves as a button.
func (e *DOMElement) IsButton() bool {
	if strings.EqualFold(e.TagName, "button") {
		return true
	}
	t := strings.ToLower(e.Type)
	return strings.EqualFold(e.TagName, "input") && (t == "submit" || t == "button")
}

// HasValidArea reports whether the element occupies screen space.
// Zero-area elements are extractor noise and are filtered before scoring.
func (e *DOMElement) HasValidArea() bool {
	return e.Coordinates.Width > 0 && e.Coordinates.Height > 0
}

// ClassContains reports whether the class attribute contains the given
// token, case-insensitively.
func (e *DOMElement) ClassContains(token string) bool {
	return strings.Contains(strings.ToLower(e.ClassName), strings.ToLower(token))
}

// TextOrLabel returns the best available display text for the element.
func (e *DOMElement) TextOrLabel() string {
	if e.Text != "" {
		return e.Text
	}
	if e.Label != "" {
		return e.Label
	}
	return e.Placeholder
}

// LookupKey returns the preferred identifier for matcher lookups.
func (e *DOMElement) LookupKey() string {
	if e.ID != "" {
		return e.ID
	}
	return e.OxID
}
