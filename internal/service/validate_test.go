package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leshachaplin/convrelay/internal/apierror"
)

func TestDecodeAndValidate(t *testing.T) {
	cases := map[string]struct {
		body     string
		expected string
	}{
		"ok": {
			body: `{"event_name":"Lead","event_source_url":"https://x","user_data":{}}`,
		},
		"empty body": {
			body:     ``,
			expected: msgBodyRequired,
		},
		"null body": {
			body:     `null`,
			expected: msgBodyRequired,
		},
		"not json": {
			body:     `event_name=Lead`,
			expected: msgInvalidJSON,
		},
		"array": {
			body:     `[{"event_name":"Lead"}]`,
			expected: msgInvalidJSON,
		},
		"missing event_name": {
			body:     `{"event_source_url":"https://x","user_data":{"em":"a@b.com"}}`,
			expected: "Missing required fields: event_name.",
		},
		"missing user_data": {
			body:     `{"event_name":"Lead","event_source_url":"https://x"}`,
			expected: "Missing required fields: user_data.",
		},
		"null user_data": {
			body:     `{"event_name":"Lead","event_source_url":"https://x","user_data":null}`,
			expected: "Missing required fields: user_data.",
		},
		"missing event_source_url": {
			body:     `{"event_name":"Lead","user_data":{}}`,
			expected: "Missing required fields: event_source_url.",
		},
		"numeric fbp": {
			body: `{"event_name":"Lead","event_source_url":"https://x","user_data":{},"fbp":123}`,
		},
		"numeric event_name": {
			body: `{"event_name":123,"event_source_url":"https://x","user_data":{}}`,
		},
		"string user_data": {
			body: `{"event_name":"Lead","event_source_url":"https://x","user_data":"abc"}`,
		},
		"object em": {
			body: `{"event_name":"Lead","event_source_url":"https://x","user_data":{"em":{"a":1}}}`,
		},
		"array em": {
			body: `{"event_name":"Lead","event_source_url":"https://x","user_data":{"em":[1]}}`,
		},
		"zero event_name": {
			body:     `{"event_name":0,"event_source_url":"https://x","user_data":{}}`,
			expected: "Missing required fields: event_name.",
		},
		"empty string user_data": {
			body:     `{"event_name":"Lead","event_source_url":"https://x","user_data":""}`,
			expected: "Missing required fields: user_data.",
		},
		"missing everything": {
			body:     `{}`,
			expected: "Missing required fields: event_name, user_data, event_source_url.",
		},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			event, err := DecodeEvent([]byte(tc.body))
			if err == nil {
				err = Validate(event)
			}

			if tc.expected == "" {
				require.NoError(t, err)
				return
			}

			var apiErr apierror.Error
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, http.StatusBadRequest, apiErr.StatusCode())
			require.Equal(t, tc.expected, apiErr.Message)
		})
	}
}
