package request_test

import (
	"testing"

	"go-hr-portal/internal/shared/request"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientType(t *testing.T) {
	cases := []struct {
		name      string
		header    string
		userAgent string
		want      string
	}{
		{"explicit header wins", "Mobile", "Mozilla/5.0", request.ClientMobile},
		{"browser", "", "Mozilla/5.0 (X11; Linux x86_64)", request.ClientWeb},
		{"android http client", "", "okhttp/4.12.0", request.ClientMobile},
		{"curl", "", "curl/8.5.0", request.ClientAPI},
		{"empty", "", "", request.ClientAPI},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, request.ResolveClientType(tc.header, tc.userAgent))
		})
	}
}
