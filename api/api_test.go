package api

import (
	"encoding/json"
	"fmt"
	"github.com/aleph-zero/flutterstack/engine"
	"github.com/aleph-zero/flutterstack/service/command"
	"github.com/aleph-zero/flutterstack/service/identity"
	"github.com/aleph-zero/flutterstack/service/stacks"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func initializeTestRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(render.SetContentType(render.ContentTypeJSON))

	stackSvc := stacks.NewService(stacks.NewConfig(stacks.WithMaxCapacity(16)))
	{
		handler := NewIdentityHandler(identity.NewService("node-a", "0.0.1", "127.0.0.1", 8080))
		router.Get("/identity", handler.GetIdentity)
	}
	{
		handler := NewCommandHandler(command.NewService(stackSvc))
		router.Get("/exec", handler.Execute)
	}
	{
		handler := NewStackHandler(stackSvc)
		router.Mount("/stacks", handler.Routes())
	}
	return router
}

func do(t *testing.T, server *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)

	res, err := server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func TestIdentityHandler_GetIdentity(t *testing.T) {
	server := httptest.NewServer(initializeTestRouter())
	defer server.Close()

	status, body := do(t, server, http.MethodGet, "/identity", "")
	require.Equal(t, http.StatusOK, status)

	var model identity.Model
	require.NoError(t, json.Unmarshal(body, &model))
	expected := identity.Model{Node: "node-a", Version: "0.0.1", Address: "127.0.0.1", Port: 8080}
	if diff := cmp.Diff(expected, model); diff != "" {
		t.Errorf("identity does not match (-expected, +received):\n%s", diff)
	}
}

func TestStackHandler_Lifecycle(t *testing.T) {
	server := httptest.NewServer(initializeTestRouter())
	defer server.Close()

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodPut, "/stacks/s", `{"capacity": 3}`, http.StatusCreated},
		{http.MethodPut, "/stacks/s", `{"capacity": 3}`, http.StatusConflict},
		{http.MethodPost, "/stacks/s/pop", "", http.StatusConflict},
		{http.MethodGet, "/stacks/s/top", "", http.StatusConflict},
		{http.MethodPost, "/stacks/s/push", `{"value": 1}`, http.StatusOK},
		{http.MethodPost, "/stacks/s/push", `{"value": "two"}`, http.StatusOK},
		{http.MethodPost, "/stacks/s/push", `{"value": {"kind": "float64", "value": 3.5}}`, http.StatusOK},
		{http.MethodPost, "/stacks/s/push", `{"value": 4}`, http.StatusConflict},
		{http.MethodPost, "/stacks/s/push", `{}`, http.StatusBadRequest},
		{http.MethodGet, "/stacks/s/top", "", http.StatusOK},
		{http.MethodPost, "/stacks/s/pop", "", http.StatusOK},
		{http.MethodPost, "/stacks/s/clear", "", http.StatusOK},
		{http.MethodPut, "/stacks/s/fill", `[1, 2, 3, 4]`, http.StatusConflict},
		{http.MethodPut, "/stacks/s/fill", "1\n2\n3\n", http.StatusOK},
		{http.MethodPut, "/stacks/s/fill", `[1, null]`, http.StatusBadRequest},
		{http.MethodGet, "/stacks/s/scan?order=sideways", "", http.StatusBadRequest},
		{http.MethodGet, "/stacks/missing", "", http.StatusNotFound},
		{http.MethodPost, "/stacks/missing/push", `{"value": 1}`, http.StatusNotFound},
		{http.MethodPut, "/stacks/big", `{"capacity": 17}`, http.StatusBadRequest},
		{http.MethodPut, "/stacks/both", `{"capacity": 1, "values": [1]}`, http.StatusBadRequest},
		{http.MethodPut, "/stacks/neither", `{}`, http.StatusBadRequest},
		{http.MethodPut, "/stacks/seq", `{"values": [3, 2, 1]}`, http.StatusCreated},
		{http.MethodDelete, "/stacks/seq", "", http.StatusNoContent},
		{http.MethodDelete, "/stacks/seq", "", http.StatusNotFound},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d %s %s", i, tt.method, tt.path), func(t *testing.T) {
			status, body := do(t, server, tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, status, string(body))
		})
	}

	status, body := do(t, server, http.MethodGet, "/stacks/s", "")
	require.Equal(t, http.StatusOK, status)
	var d stacks.Description
	require.NoError(t, json.Unmarshal(body, &d))
	expected := stacks.Description{Name: "s", Size: 3, Capacity: 3, Empty: false, Full: true, Display: "[ 1 2 3 ]"}
	if diff := cmp.Diff(expected, d); diff != "" {
		t.Errorf("description does not match (-expected, +received):\n%s", diff)
	}
}

func TestStackHandler_PopAndScan(t *testing.T) {
	server := httptest.NewServer(initializeTestRouter())
	defer server.Close()

	status, _ := do(t, server, http.MethodPut, "/stacks/s", `{"values": [1, "b", true]}`)
	require.Equal(t, http.StatusCreated, status)

	tests := []struct {
		order    string
		expected []engine.Value
	}{
		{"", []engine.Value{engine.NewIntValue(1), engine.NewStringValue("b"), engine.NewBooleanValue(true)}},
		{"reverse", []engine.Value{engine.NewBooleanValue(true), engine.NewStringValue("b"), engine.NewIntValue(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			status, body := do(t, server, http.MethodGet, "/stacks/s/scan?order="+tt.order, "")
			require.Equal(t, http.StatusOK, status)

			var response ScanResponse
			require.NoError(t, json.Unmarshal(body, &response))
			if diff := cmp.Diff(tt.expected, response.Values, cmp.Comparer(engine.Value.Equal)); diff != "" {
				t.Errorf("scan does not match (-expected, +received):\n%s", diff)
			}
		})
	}

	status, body := do(t, server, http.MethodPost, "/stacks/s/pop", "")
	require.Equal(t, http.StatusOK, status)
	var response ValueResponse
	require.NoError(t, json.Unmarshal(body, &response))
	require.Equal(t, "s", response.Stack)
	require.True(t, engine.NewBooleanValue(true).Equal(response.Value))

	status, body = do(t, server, http.MethodGet, "/stacks", "")
	require.Equal(t, http.StatusOK, status)
	var list StackListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Stacks, 1)
	require.Equal(t, 2, list.Stacks[0].Size)
}

func TestCommandHandler_Execute(t *testing.T) {
	server := httptest.NewServer(initializeTestRouter())
	defer server.Close()

	tests := []struct {
		command string
		status  int
		output  string
	}{
		{`CREATE STACK s FROM (1, 2, 3)`, http.StatusOK, "[ 1 2 3 ]"},
		{`CHECK s WHERE top = 3`, http.StatusOK, "true"},
		{`PUSH s 4`, http.StatusConflict, ""},
		{`POP missing`, http.StatusNotFound, ""},
		{`POP s s`, http.StatusBadRequest, ""},
		{``, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			status, body := do(t, server, http.MethodGet, "/exec?q="+url.QueryEscape(tt.command), "")
			require.Equal(t, tt.status, status, string(body))
			if tt.status != http.StatusOK {
				var response ErrResponse
				require.NoError(t, json.Unmarshal(body, &response))
				require.NotEmpty(t, response.ErrorText)
				return
			}

			var result command.CommandResult
			require.NoError(t, json.Unmarshal(body, &result))
			require.Equal(t, tt.output, result.Output)
		})
	}
}

func TestCommandHandler_RejectsNonFiniteValues(t *testing.T) {
	server := httptest.NewServer(initializeTestRouter())
	defer server.Close()

	status, body := do(t, server, http.MethodGet, "/exec?q="+url.QueryEscape(`CREATE STACK f (4)`), "")
	require.Equal(t, http.StatusOK, status, string(body))

	for _, cmd := range []string{`PUSH f 1e308 * 10`, `FILL f (1.5, -1e308 * 1e10)`, `CREATE STACK g FROM (1e308 + 1e308)`} {
		status, body = do(t, server, http.MethodGet, "/exec?q="+url.QueryEscape(cmd), "")
		require.Equal(t, http.StatusBadRequest, status, string(body))
	}

	status, body = do(t, server, http.MethodPost, "/stacks/f/push", `{"value":2.5}`)
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = do(t, server, http.MethodGet, "/stacks/f/scan", "")
	require.Equal(t, http.StatusOK, status, string(body))
	var scan ScanResponse
	require.NoError(t, json.Unmarshal(body, &scan))
	if diff := cmp.Diff([]engine.Value{engine.NewFloatValue(2.5)}, scan.Values, cmp.Comparer(engine.Value.Equal)); diff != "" {
		t.Errorf("Scan does not match (-expected, +received):\n%s", diff)
	}

	status, _ = do(t, server, http.MethodGet, "/stacks/g", "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestStackHandler_RequestLimits(t *testing.T) {
	router := initializeTestRouter()
	serve := func(method, path, body string) int {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
		return rec.Code
	}

	require.Equal(t, http.StatusCreated, serve(http.MethodPut, "/stacks/s", `{"capacity": 3}`))

	huge := `"` + strings.Repeat("a", int(MaxRequestBytes)) + `"`
	require.Equal(t, http.StatusRequestEntityTooLarge, serve(http.MethodPut, "/stacks/s/fill", huge))
	require.Equal(t, http.StatusRequestEntityTooLarge, serve(http.MethodPut, "/stacks/big", `{"values": [`+huge+`]}`))

	// more values than any stack may hold
	require.Equal(t, http.StatusConflict, serve(http.MethodPut, "/stacks/s/fill", strings.Repeat("1\n", 17)))
	require.Equal(t, http.StatusOK, serve(http.MethodPut, "/stacks/s/fill", "1\n2\n"))
}

func TestStackHandler_FloatsKeepTheirKind(t *testing.T) {
	server := httptest.NewServer(initializeTestRouter())
	defer server.Close()

	status, body := do(t, server, http.MethodPut, "/stacks/r", `{"values": [3.0, 3, 2.5]}`)
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = do(t, server, http.MethodGet, "/stacks/r/scan", "")
	require.Equal(t, http.StatusOK, status, string(body))
	var scan ScanResponse
	require.NoError(t, json.Unmarshal(body, &scan))

	expected := []engine.Value{engine.NewFloatValue(3), engine.NewIntValue(3), engine.NewFloatValue(2.5)}
	if diff := cmp.Diff(expected, scan.Values, cmp.Comparer(engine.Value.Equal)); diff != "" {
		t.Errorf("Scan does not match (-expected, +received):\n%s", diff)
	}

	// refilling from the scanned values leaves the stack equal to a copy of itself
	refill, err := json.Marshal(scan.Values)
	require.NoError(t, err)
	status, body = do(t, server, http.MethodGet, "/exec?q="+url.QueryEscape(`COPY r TO c`), "")
	require.Equal(t, http.StatusOK, status, string(body))
	status, body = do(t, server, http.MethodPut, "/stacks/r/fill", string(refill))
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = do(t, server, http.MethodGet, "/exec?q="+url.QueryEscape(`COMPARE r c`), "")
	require.Equal(t, http.StatusOK, status, string(body))
	var result command.CommandResult
	require.NoError(t, json.Unmarshal(body, &result))
	require.True(t, *result.Equal)
}
