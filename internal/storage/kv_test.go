package storage

import "testing"

func TestMemoryKV(t *testing.T) {
	m := NewMemory()

	if _, ok, _ := m.Get("missing"); ok {
		t.Error("Expected missing key to be absent")
	}
	m.Set("a", "1")
	m.Set("a", "2")

	if v, ok, _ := m.Get("a"); !ok || v != "2" {
		t.Errorf("Expected a=2, got %q (ok=%v)", v, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Expected 1 key, got %d", m.Len())
	}
}

func TestJSONHelpers(t *testing.T) {
	type record struct {
		XP     int `json:"xp"`
		Streak int `json:"dailyStreak"`
	}

	tests := []struct {
		name      string
		stored    string
		present   bool
		wantFound bool
		wantErr   bool
	}{
		{"absent", "", false, false, false},
		{"valid", `{"xp":150,"dailyStreak":2}`, true, true, false},
		{"corrupt", `{"xp":`, true, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMemory()
			if tc.present {
				m.Set("player_stats", tc.stored)
			}

			var r record
			found, err := LoadJSON(m, "player_stats", &r)
			if found != tc.wantFound {
				t.Errorf("found = %v, expected %v", found, tc.wantFound)
			}
			if (err != nil) != tc.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.name == "valid" && (r.XP != 150 || r.Streak != 2) {
				t.Errorf("Decoded %+v", r)
			}
		})
	}

	m := NewMemory()
	if err := SaveJSON(m, "k", record{XP: 7}); err != nil {
		t.Fatal(err)
	}
	if v, _, _ := m.Get("k"); v != `{"xp":7,"dailyStreak":0}` {
		t.Errorf("Unexpected encoding %s", v)
	}
}
