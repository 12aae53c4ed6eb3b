package config

import "testing"

func TestParseValue(t *testing.T) {
	tests := []struct {
		key     string
		raw     string
		want    interface{}
		wantErr bool
	}{
		{"policy", "bleeding-edge", "bleeding-edge", false},
		{"concurrency", "12", 12, false},
		{"concurrency", "many", nil, true},
		{"noninteractive", "yes", true, false},
		{"noninteractive", "off", false, false},
		{"noninteractive", "maybe", nil, true},
		{"unknown", "1", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.raw, func(t *testing.T) {
			got, err := parseValue(tt.key, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestEnvName(t *testing.T) {
	tests := map[string]string{
		"policy":            "TINKAROS_POLICY",
		"log.level":         "TINKAROS_LOG_LEVEL",
		"curseforge.apikey": "TINKAROS_CURSEFORGE_APIKEY",
	}
	for key, want := range tests {
		if got := EnvName(key); got != want {
			t.Errorf("EnvName(%q) = %q, want %q", key, got, want)
		}
	}
}
