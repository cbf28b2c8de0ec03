package inspector

import (
	"testing"

	"github.com/pthm-cable/murmur/components"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		opts   map[string]string
	}{
		{"", WidgetAuto, nil},
		{"bar", WidgetBar, nil},
		{"bar,max:0.5", WidgetBar, map[string]string{"max": "0.5"}},
		{"label, fmt:%.1f", WidgetLabel, map[string]string{"fmt": "%.1f"}},
		{"angle", WidgetAngle, nil},
		{"skip", WidgetSkip, nil},
		{"nonsense", WidgetAuto, nil},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, opts := ParseTag(tt.tag)
			if w != tt.widget {
				t.Errorf("widget = %v, want %v", w, tt.widget)
			}
			if len(opts) != len(tt.opts) {
				t.Fatalf("options = %v, want %v", opts, tt.opts)
			}
			for k, v := range tt.opts {
				if opts[k] != v {
					t.Errorf("option %s = %q, want %q", k, opts[k], v)
				}
			}
		})
	}
}

func TestExtractFieldsAgent(t *testing.T) {
	a := components.Agent{MaxSpeed: 2, MaxForce: 0.03, Activation: 0.7, NoiseSeed: 123}
	fields := ExtractFields(&a)

	byName := map[string]Field{}
	for _, f := range fields {
		byName[f.Name] = f
	}
	if _, ok := byName["NoiseSeed"]; ok {
		t.Error("NoiseSeed is tagged skip but was extracted")
	}
	act, ok := byName["Activation"]
	if !ok || act.Widget != WidgetBar || act.Value != float32(0.7) {
		t.Errorf("Activation field = %+v", act)
	}
	if got := FormatValue(byName["MaxForce"].Value, byName["MaxForce"].Options["fmt"]); got != "0.030" {
		t.Errorf("MaxForce formatted as %q, want 0.030", got)
	}
}

func TestExtractFieldsNonStruct(t *testing.T) {
	if got := ExtractFields(3); got != nil {
		t.Errorf("ExtractFields(int) = %v, want nil", got)
	}
	var nilAgent *components.Agent
	if got := ExtractFields(nilAgent); got != nil {
		t.Errorf("ExtractFields(nil pointer) = %v, want nil", got)
	}
}

func TestGetMax(t *testing.T) {
	if got := GetMax(nil); got != 1 {
		t.Errorf("GetMax(nil) = %v, want 1", got)
	}
	if got := GetMax(map[string]string{"max": "0.5"}); got != 0.5 {
		t.Errorf("GetMax(0.5) = %v", got)
	}
	if got := GetMax(map[string]string{"max": "bogus"}); got != 1 {
		t.Errorf("GetMax(bogus) = %v, want fallback 1", got)
	}
}
