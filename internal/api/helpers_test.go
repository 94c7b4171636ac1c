package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Sakebul-islam/kola-server-side/internal/api/shared"
	"github.com/Sakebul-islam/kola-server-side/internal/service/auth"
)

const (
	donor    = "donor@x.com"
	asker    = "asker@x.com"
	objectID = "65a1f0c2e4b0a1b2c3d4e5f6"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRequest builds a request with an optional JSON body, path id and
// authenticated identity.
func newRequest(t *testing.T, method, target string, body any, id, identity string) *http.Request {
	t.Helper()

	var reader io.Reader = http.NoBody
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := req.Context()
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(idParam, id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	if identity != "" {
		ctx = context.WithValue(ctx, shared.IdentityContextKey, &auth.Claims{
			Email:  identity,
			Values: map[string]any{auth.ClaimEmail: identity},
		})
	}
	return req.WithContext(ctx)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
