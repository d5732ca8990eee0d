package types

import "testing"

func TestMatchLike_PercentWildcard(t *testing.T) {
	tests := []struct {
		value    string
		pattern  string
		expected bool
	}{
		{"Boeing 747", "%Boeing%", true},
		{"Boeing 777", "%Boeing%", true},
		{"Airbus A330", "%Boeing%", false},
		{"Boeing 747", "Boeing%", true},
		{"Boeing 747", "%747", true},
		{"Boeing 747", "%757", false},
		{"anything", "%", true},
		{"", "%", true},
		{"abc", "%%", true},
		{"abc", "a%c", true},
		{"ac", "a%c", true},
		{"ab", "a%c", false},
	}

	for _, tt := range tests {
		if got := MatchLike(tt.value, tt.pattern); got != tt.expected {
			t.Errorf("MatchLike(%q, %q) = %v, expected %v", tt.value, tt.pattern, got, tt.expected)
		}
	}
}

func TestMatchLike_UnderscoreWildcard(t *testing.T) {
	tests := []struct {
		value    string
		pattern  string
		expected bool
	}{
		{"cat", "c_t", true},
		{"cart", "c_t", false},
		{"ct", "c_t", false},
		{"abc", "___", true},
		{"abcd", "___", false},
		{"Boeing 747", "Boeing ___", true},
	}

	for _, tt := range tests {
		if got := MatchLike(tt.value, tt.pattern); got != tt.expected {
			t.Errorf("MatchLike(%q, %q) = %v, expected %v", tt.value, tt.pattern, got, tt.expected)
		}
	}
}

func TestMatchLike_CaseSensitive(t *testing.T) {
	if MatchLike("boeing 747", "%Boeing%") {
		t.Error("LIKE should be case-sensitive: %Boeing% must not match lowercase boeing")
	}
	if !MatchLike("Boeing", "Boeing") {
		t.Error("exact pattern should match identical value")
	}
	if MatchLike("Boeing", "boeing") {
		t.Error("exact pattern should not match with different case")
	}
}

func TestMatchLike_MixedWildcards(t *testing.T) {
	if !MatchLike("Boeing 747", "B%_47") {
		t.Errorf("B%%_47 should match Boeing 747")
	}
	if !MatchLike("Airbus A330", "A%_3_") {
		t.Errorf("A%%_3_ should match Airbus A330")
	}
	if MatchLike("A330", "A%_3_0") {
		t.Errorf("A%%_3_0 should not match A330")
	}
}
