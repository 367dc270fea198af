package mode

import "testing"

func TestParseAcceptsBothPersonas(t *testing.T) {
	for _, s := range []string{"reflective", "Reflective", " REFLECTIVE "} {
		m, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", s, err)
		}
		if m != Reflective {
			t.Fatalf("Parse(%q) = %v, want reflective", s, m)
		}
	}
	m, err := Parse("energetic")
	if err != nil {
		t.Fatalf("Parse(energetic) returned error: %v", err)
	}
	if m != Energetic {
		t.Fatalf("Parse(energetic) = %v, want energetic", m)
	}
}

func TestParseRejectsUnknownValues(t *testing.T) {
	for _, s := range []string{"", "calm", "reflectiv", "both"} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q) should fail", s)
		}
	}
}

func TestOpposite(t *testing.T) {
	if Reflective.Opposite() != Energetic {
		t.Fatal("opposite of reflective should be energetic")
	}
	if Energetic.Opposite() != Reflective {
		t.Fatal("opposite of energetic should be reflective")
	}
}

func TestDefaultPreference(t *testing.T) {
	p := DefaultPreference()
	if p.Mode != Reflective {
		t.Errorf("default mode = %v, want reflective", p.Mode)
	}
	if !p.AudioEnabled {
		t.Error("audio should be enabled by default")
	}
}
