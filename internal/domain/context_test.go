package domain

import "testing"

func TestTrafficSource_IsValid(t *testing.T) {
	valid := []TrafficSource{
		TrafficOrganic, TrafficPaid, TrafficSocial, TrafficEmail,
		TrafficDirect, TrafficReferral, TrafficLinkedIn, TrafficUnknown,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", s)
		}
	}
	if TrafficSource("carrier-pigeon").IsValid() {
		t.Error("unknown source should be invalid")
	}
}

func TestDeviceType_IsValid(t *testing.T) {
	for _, d := range []DeviceType{DeviceDesktop, DeviceMobile, DeviceTablet} {
		if !d.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", d)
		}
	}
	if DeviceType("smartwatch").IsValid() {
		t.Error("unknown device should be invalid")
	}
}

func TestPageContext_Normalize(t *testing.T) {
	out := PageContext{}.Normalize()

	if out.TrafficSource != TrafficUnknown {
		t.Errorf("TrafficSource = %v, want %v", out.TrafficSource, TrafficUnknown)
	}
	if out.DeviceType != DeviceDesktop {
		t.Errorf("DeviceType = %v, want %v", out.DeviceType, DeviceDesktop)
	}
	if out.Industry != IndustryUnknown {
		t.Errorf("Industry = %v, want %v", out.Industry, IndustryUnknown)
	}
	if out.BusinessType != BusinessUnknown {
		t.Errorf("BusinessType = %v, want %v", out.BusinessType, BusinessUnknown)
	}
	if out.Competition != CompetitionUnknown {
		t.Errorf("Competition = %v, want %v", out.Competition, CompetitionUnknown)
	}
	if out.Quality != QualityUnknown {
		t.Errorf("Quality = %v, want %v", out.Quality, QualityUnknown)
	}
	if out.Geo != GeoTierUnknown {
		t.Errorf("Geo = %v, want %v", out.Geo, GeoTierUnknown)
	}
}

func TestPageContext_NormalizeKeepsKnownValues(t *testing.T) {
	in := PageContext{
		TrafficSource: TrafficPaid,
		DeviceType:    DeviceMobile,
		Industry:      IndustryLegal,
	}
	out := in.Normalize()

	if out.TrafficSource != TrafficPaid {
		t.Errorf("TrafficSource = %v, want %v", out.TrafficSource, TrafficPaid)
	}
	if out.DeviceType != DeviceMobile {
		t.Errorf("DeviceType = %v, want %v", out.DeviceType, DeviceMobile)
	}
	if out.Industry != IndustryLegal {
		t.Errorf("Industry = %v, want %v", out.Industry, IndustryLegal)
	}
}

func TestPageContext_NormalizeRejectsInvalidEnums(t *testing.T) {
	in := PageContext{
		TrafficSource: "carrier-pigeon",
		DeviceType:    "smartwatch",
	}
	out := in.Normalize()

	if out.TrafficSource != TrafficUnknown {
		t.Errorf("TrafficSource = %v, want %v", out.TrafficSource, TrafficUnknown)
	}
	if out.DeviceType != DeviceDesktop {
		t.Errorf("DeviceType = %v, want %v", out.DeviceType, DeviceDesktop)
	}
}

func TestPageContext_PageText(t *testing.T) {
	ctx := PageContext{
		AllElements: []DOMElement{
			{Text: "Start your free trial"},
			{Text: ""},
			{Text: "No credit card required"},
		},
	}
	if got := ctx.PageText(); got != "Start your free trial No credit card required " {
		t.Errorf("PageText() = %q", got)
	}

	if got := (PageContext{}).PageText(); got != "" {
		t.Errorf("PageText() on empty context = %q, want empty", got)
	}
}
