package domain

import "testing"

func TestCoordinates_Area(t *testing.T) {
	c := Coordinates{X: 10, Y: 20, Width: 100, Height: 50}
	if got := c.Area(); got != 5000 {
		t.Errorf("Area() = %v, want 5000", got)
	}
}

func TestCoordinates_Center(t *testing.T) {
	c := Coordinates{X: 10, Y: 20, Width: 100, Height: 50}
	x, y := c.Center()
	if x != 60 || y != 45 {
		t.Errorf("Center() = (%v, %v), want (60, 45)", x, y)
	}
}

func TestDOMElement_IsFormField(t *testing.T) {
	tests := []struct {
		tag      string
		expected bool
	}{
		{"input", true},
		{"INPUT", true},
		{"select", true},
		{"textarea", true},
		{"button", false},
		{"a", false},
		{"div", false},
	}

	for _, tt := range tests {
		el := DOMElement{TagName: tt.tag}
		if got := el.IsFormField(); got != tt.expected {
			t.Errorf("IsFormField(%q) = %v, want %v", tt.tag, got, tt.expected)
		}
	}
}

func TestDOMElement_IsLink(t *testing.T) {
	withHref := DOMElement{TagName: "a", Href: "/pricing"}
	if !withHref.IsLink() {
		t.Error("anchor with href should be a link")
	}

	noHref := DOMElement{TagName: "a"}
	if noHref.IsLink() {
		t.Error("anchor without href should not be a link")
	}

	button := DOMElement{TagName: "button", Href: "/pricing"}
	if button.IsLink() {
		t.Error("button should not be a link")
	}
}

func TestDOMElement_IsButton(t *testing.T) {
	tests := []struct {
		name     string
		el       DOMElement
		expected bool
	}{
		{"button tag", DOMElement{TagName: "button"}, true},
		{"submit input", DOMElement{TagName: "input", Type: "submit"}, true},
		{"button input", DOMElement{TagName: "input", Type: "BUTTON"}, true},
		{"text input", DOMElement{TagName: "input", Type: "text"}, false},
		{"styled link", DOMElement{TagName: "a", HasButtonStyling: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.IsButton(); got != tt.expected {
				t.Errorf("IsButton() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDOMElement_HasValidArea(t *testing.T) {
	valid := DOMElement{Coordinates: Coordinates{Width: 1, Height: 1}}
	if !valid.HasValidArea() {
		t.Error("1x1 element should have valid area")
	}

	flat := DOMElement{Coordinates: Coordinates{Width: 100}}
	if flat.HasValidArea() {
		t.Error("zero-height element should not have valid area")
	}
}

func TestDOMElement_ClassContains(t *testing.T) {
	el := DOMElement{ClassName: "Btn-Primary nav-item"}
	if !el.ClassContains("btn-primary") {
		t.Error("match should be case-insensitive")
	}
	if el.ClassContains("footer") {
		t.Error("missing token should not match")
	}
}

func TestDOMElement_TextOrLabel(t *testing.T) {
	tests := []struct {
		name     string
		el       DOMElement
		expected string
	}{
		{"text wins", DOMElement{Text: "Buy", Label: "Purchase", Placeholder: "..."}, "Buy"},
		{"label fallback", DOMElement{Label: "Email", Placeholder: "you@co.com"}, "Email"},
		{"placeholder last", DOMElement{Placeholder: "you@co.com"}, "you@co.com"},
		{"all empty", DOMElement{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.TextOrLabel(); got != tt.expected {
				t.Errorf("TextOrLabel() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDOMElement_LookupKey(t *testing.T) {
	both := DOMElement{ID: "cta", OxID: "ox-1"}
	if got := both.LookupKey(); got != "cta" {
		t.Errorf("LookupKey() = %v, want cta", got)
	}

	oxOnly := DOMElement{OxID: "ox-1"}
	if got := oxOnly.LookupKey(); got != "ox-1" {
		t.Errorf("LookupKey() = %v, want ox-1", got)
	}

	neither := DOMElement{}
	if got := neither.LookupKey(); got != "" {
		t.Errorf("LookupKey() = %v, want empty", got)
	}
}
