package httpserver_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"movieinfo/httpserver"
	"movieinfo/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{}
}

func decodeAPIResponse(t testing.TB, recorder *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp), "response should be an APIResponse")
	return resp
}

func decodeAPIResult(t testing.TB, result interface{}, target interface{}) {
	t.Helper()
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, target))
}

func newJSONRequest(method, path, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	return request
}

func serve(server *httpserver.Server, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	server.Router.ServeHTTP(recorder, request)
	return recorder
}
