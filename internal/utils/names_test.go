package utils

import (
	"reflect"
	"testing"
)

func TestKebabCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"UsersClient", "users-client"},
		{"HTTPUsersClient", "http-users-client"},
		{"OAuth2Client", "o-auth-2-client"},
		{"userProfileClient", "user-profile-client"},
		{"Admin_SettingsClient", "admin-settings-client"},
		{"APIClient", "api-client"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := KebabCase(tt.input); got != tt.want {
				t.Errorf("KebabCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	got := Words("fooBar2Baz")
	want := []string{"foo", "Bar", "2", "Baz"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words = %v, want %v", got, want)
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"notify", true},
		{"$skip", true},
		{"_id", true},
		{"page-size", false},
		{"2fa", false},
		{"", false},
		{"delete", false},
	}

	for _, tt := range tests {
		if got := IsIdentifier(tt.name); got != tt.want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPropertyKey(t *testing.T) {
	if got := PropertyKey("notify"); got != "notify" {
		t.Errorf("PropertyKey(notify) = %q", got)
	}
	if got := PropertyKey("page-size"); got != "'page-size'" {
		t.Errorf("PropertyKey(page-size) = %q", got)
	}
	if got := QuoteString(`it's`); got != `'it\'s'` {
		t.Errorf("QuoteString = %q", got)
	}
}

func TestIsBuiltinType(t *testing.T) {
	for _, name := range []string{"string", "Promise", "Record", "Date", " number "} {
		if !IsBuiltinType(name) {
			t.Errorf("%q should be builtin", name)
		}
	}
	for _, name := range []string{"UserDto", "Observable", "HttpClient"} {
		if IsBuiltinType(name) {
			t.Errorf("%q should not be builtin", name)
		}
	}
}
