// Package mocks provides function-field mocks of the service and token
// interfaces for handler tests.
//
// Each mock exposes an XxxFn field per method; unset fields fall back to a
// zero result and the mock's default error:
//
//	tokens := &mocks.MockTokenService{
//	    IssueTokenFn: func(ctx context.Context, claims map[string]any) (string, error) {
//	        return "mocked-token", nil
//	    },
//	}
package mocks
