package utils

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerateShortCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^NET-[A-Z0-9]{4}[0-9]{4}$`)
	for i := 0; i < 20; i++ {
		code, err := GenerateShortCode("NET")
		if err != nil {
			t.Fatalf("GenerateShortCode: %v", err)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("code %q does not match %s", code, pattern)
		}
	}
}

func TestGenerateShortCodeDefaultPrefix(t *testing.T) {
	code, err := GenerateShortCode("")
	if err != nil {
		t.Fatalf("GenerateShortCode: %v", err)
	}
	if !strings.HasPrefix(code, DefaultCodePrefix+"-") {
		t.Fatalf("code %q lacks default prefix", code)
	}
}

func TestCodePrefix(t *testing.T) {
	cases := []struct {
		productCode, custom, want string
	}{
		{"NETFLIX001", "", "NET"},
		{"NETFLIX001", "GIFT", "GIFT"},
		{"sp", "", "SP"},
		{"", "", DefaultCodePrefix},
	}
	for _, tc := range cases {
		if got := CodePrefix(tc.productCode, tc.custom); got != tc.want {
			t.Errorf("CodePrefix(%q, %q) = %q, want %q", tc.productCode, tc.custom, got, tc.want)
		}
	}
}
