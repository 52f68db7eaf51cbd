package roles

import (
	"testing"

	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
)

func TestPrimaryPrecedence(t *testing.T) {
	cases := []struct {
		name    string
		granted []enums.AppRole
		want    enums.AppRole
	}{
		{"admin wins", []enums.AppRole{enums.AppRoleClient, enums.AppRoleAdmin}, enums.AppRoleAdmin},
		{"client over user", []enums.AppRole{enums.AppRoleUser, enums.AppRoleClient}, enums.AppRoleClient},
		{"single grant", []enums.AppRole{enums.AppRoleUser}, enums.AppRoleUser},
		{"no grants defaults to user", nil, enums.AppRoleUser},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Primary(tc.granted); got != tc.want {
				t.Fatalf("Primary(%v) = %q, want %q", tc.granted, got, tc.want)
			}
		})
	}
}
