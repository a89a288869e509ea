package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"lambda-services-api/internal/models"
	"lambda-services-api/internal/services"
	"lambda-services-api/pkg/lambda"
)

var createdIDPattern = regexp.MustCompile(`^[0-9a-z]{9}$`)

func newUserDispatcher(t *testing.T) (*ResourceDispatcher, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	return NewUserDispatcher(services.NewUserService(nil), ResponseOptions{}, logger), hook
}

func newOrderDispatcher(t *testing.T) (*ResourceDispatcher, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	return NewOrderDispatcher(services.NewOrderService(nil), ResponseOptions{}, logger), hook
}

func decodeBody(t *testing.T, resp *lambda.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		t.Fatalf("response body is not a JSON object: %v (%s)", err, resp.Body)
	}
	return body
}

func TestResourceDispatcher_Create(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "object body", body: `{"name":"Ada","email":"ada@example.com"}`},
		{name: "empty body", body: ""},
		{name: "whitespace body", body: "  \n"},
		{name: "empty object", body: `{}`},
		{name: "array body", body: `[1,2,3]`},
		{name: "string body", body: `"hello"`},
		{name: "null body", body: `null`},
		{name: "unknown fields", body: `{"nickname":"ada"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher, _ := newUserDispatcher(t)
			start := time.Now().Truncate(time.Millisecond)

			resp := dispatcher.Handle(context.Background(), &lambda.Request{Method: http.MethodPost, Body: []byte(tt.body)})
			if resp.StatusCode != http.StatusCreated {
				t.Fatalf("status = %d, want 201 (%s)", resp.StatusCode, resp.Body)
			}
			if resp.Headers["Content-Type"] != "application/json" {
				t.Errorf("Content-Type = %q", resp.Headers["Content-Type"])
			}

			body := decodeBody(t, resp)
			if body["message"] != "User created successfully" {
				t.Errorf("message = %v", body["message"])
			}

			user, ok := body["user"].(map[string]interface{})
			if !ok {
				t.Fatalf("user = %v, want object", body["user"])
			}
			id, _ := user["id"].(string)
			if !createdIDPattern.MatchString(id) {
				t.Errorf("id = %q, want 9 base-36 characters", id)
			}
			createdAt, err := models.ParseTimestamp(user["createdAt"].(string))
			if err != nil {
				t.Fatalf("createdAt is not a timestamp: %v", err)
			}
			if createdAt.Before(start) {
				t.Errorf("createdAt %v is before invocation start %v", createdAt, start)
			}
		})
	}
}

func TestResourceDispatcher_CreateCopiesFields(t *testing.T) {
	dispatcher, _ := newUserDispatcher(t)

	resp := dispatcher.Handle(context.Background(), &lambda.Request{
		Method: http.MethodPost,
		Body:   []byte(`{"name":"Ada","email":"ada@example.com"}`),
	})
	user := decodeBody(t, resp)["user"].(map[string]interface{})

	if user["name"] != "Ada" || user["email"] != "ada@example.com" {
		t.Errorf("user = %v, want fields copied from body", user)
	}

	resp = dispatcher.Handle(context.Background(), &lambda.Request{Method: http.MethodPost, Body: []byte(`{}`)})
	user = decodeBody(t, resp)["user"].(map[string]interface{})
	if _, present := user["name"]; present {
		t.Errorf("user = %v, want absent name", user)
	}
}

func TestResourceDispatcher_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "not json"},
		{name: "truncated object", body: `{"name":`},
		{name: "trailing garbage", body: `{"name":"Ada"} x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher, _ := newUserDispatcher(t)

			resp := dispatcher.Handle(context.Background(), &lambda.Request{Method: http.MethodPost, Body: []byte(tt.body)})
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			if string(resp.Body) != `{"message":"Invalid request body"}` {
				t.Errorf("body = %s", resp.Body)
			}
		})
	}
}

func TestResourceDispatcher_Get(t *testing.T) {
	dispatcher, _ := newUserDispatcher(t)

	for _, id := range []string{"abc123", "ANY-id", "1"} {
		t.Run(id, func(t *testing.T) {
			req := &lambda.Request{Method: http.MethodGet, PathParams: map[string]string{UserIDParam: id}}

			first := dispatcher.Handle(context.Background(), req)
			second := dispatcher.Handle(context.Background(), req)

			if first.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", first.StatusCode)
			}
			if string(first.Body) != string(second.Body) {
				t.Errorf("bodies differ between calls:\n%s\n%s", first.Body, second.Body)
			}

			user := decodeBody(t, first)["user"].(map[string]interface{})
			if user["id"] != id {
				t.Errorf("id = %v, want %s", user["id"], id)
			}
			if user["name"] != "John Doe" || user["email"] != "john.doe@example.com" || user["createdAt"] != models.SeedTimestamp {
				t.Errorf("user = %v, want canned record", user)
			}
		})
	}
}

func TestResourceDispatcher_Routing(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		pathParams     map[string]string
		expectedStatus int
		expectedBody   string
	}{
		{name: "get without id", method: http.MethodGet, expectedStatus: http.StatusNotFound, expectedBody: `{"message":"Not found"}`},
		{name: "get with empty id", method: http.MethodGet, pathParams: map[string]string{UserIDParam: ""}, expectedStatus: http.StatusNotFound, expectedBody: `{"message":"Not found"}`},
		{name: "put", method: http.MethodPut, pathParams: map[string]string{UserIDParam: "abc"}, expectedStatus: http.StatusMethodNotAllowed, expectedBody: `{"message":"Method not allowed"}`},
		{name: "delete", method: http.MethodDelete, expectedStatus: http.StatusMethodNotAllowed, expectedBody: `{"message":"Method not allowed"}`},
		{name: "patch", method: http.MethodPatch, expectedStatus: http.StatusMethodNotAllowed, expectedBody: `{"message":"Method not allowed"}`},
		{name: "empty method", method: "", expectedStatus: http.StatusMethodNotAllowed, expectedBody: `{"message":"Method not allowed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher, _ := newUserDispatcher(t)

			resp := dispatcher.Handle(context.Background(), &lambda.Request{
				Method:     tt.method,
				PathParams: tt.pathParams,
				Body:       []byte(`{"name":"ignored"}`),
			})
			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.expectedStatus)
			}
			if string(resp.Body) != tt.expectedBody {
				t.Errorf("body = %s, want %s", resp.Body, tt.expectedBody)
			}
		})
	}
}

func TestResourceDispatcher_NilRequest(t *testing.T) {
	dispatcher, _ := newUserDispatcher(t)

	resp := dispatcher.Handle(context.Background(), nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestResourceDispatcher_LogsRequest(t *testing.T) {
	dispatcher, hook := newUserDispatcher(t)

	dispatcher.Handle(context.Background(), &lambda.Request{
		Method:    http.MethodPost,
		Path:      "/users",
		Body:      []byte(`{"name":"Ada"}`),
		RequestID: "req-1",
	})

	entries := hook.AllEntries()
	if len(entries) == 0 {
		t.Fatal("Expected the request to be logged")
	}
	entry := entries[0]
	if entry.Data["request_id"] != "req-1" || entry.Data["resource"] != "user" {
		t.Errorf("log fields = %v", entry.Data)
	}
	event, _ := entry.Data["event"].(string)
	if !strings.Contains(event, `"httpMethod":"POST"`) || !strings.Contains(event, `\"name\":\"Ada\"`) {
		t.Errorf("event = %s, want serialized request", event)
	}
}

func TestOrderDispatcher_Scenarios(t *testing.T) {
	dispatcher, _ := newOrderDispatcher(t)

	t.Run("create pending order", func(t *testing.T) {
		resp := dispatcher.Handle(context.Background(), &lambda.Request{
			Method: http.MethodPost,
			Body:   []byte(`{"userId":"u1","items":[{"name":"A","quantity":2,"price":29.99}],"total":59.98}`),
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want 201", resp.StatusCode)
		}
		if !strings.Contains(string(resp.Body), `"status":"pending"`) || !strings.Contains(string(resp.Body), `"total":59.98`) {
			t.Errorf("body = %s", resp.Body)
		}

		body := decodeBody(t, resp)
		if body["message"] != "Order created successfully" {
			t.Errorf("message = %v", body["message"])
		}
	})

	t.Run("get canned order", func(t *testing.T) {
		resp := dispatcher.Handle(context.Background(), &lambda.Request{
			Method:     http.MethodGet,
			PathParams: map[string]string{OrderIDParam: "abc123"},
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		order := decodeBody(t, resp)["order"].(map[string]interface{})
		if order["id"] != "abc123" || order["total"] != 59.98 || order["status"] != "completed" || order["userId"] != "user123" {
			t.Errorf("order = %v", order)
		}
	})

	t.Run("user id param is not an order id", func(t *testing.T) {
		resp := dispatcher.Handle(context.Background(), &lambda.Request{
			Method:     http.MethodGet,
			PathParams: map[string]string{UserIDParam: "abc123"},
		})
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("items of any type are echoed", func(t *testing.T) {
		resp := dispatcher.Handle(context.Background(), &lambda.Request{
			Method: http.MethodPost,
			Body:   []byte(`{"items":"not-a-list"}`),
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (%s)", resp.StatusCode, resp.Body)
		}
		if !strings.Contains(string(resp.Body), `"items":"not-a-list"`) {
			t.Errorf("body = %s", resp.Body)
		}
	})
}

func TestResourceDispatcher_CreateEchoesAnyJSON(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		body     string
		field    string
		expected string
	}{
		{name: "user numeric name", resource: "user", body: `{"name":42}`, field: "name", expected: `42`},
		{name: "user boolean email", resource: "user", body: `{"name":"Ada","email":false}`, field: "email", expected: `false`},
		{name: "user nested name", resource: "user", body: `{"name":{"first":"Ada","last":["Love","lace"]}}`, field: "name", expected: `{"first":"Ada","last":["Love","lace"]}`},
		{name: "user null email", resource: "user", body: `{"email":null}`, field: "email", expected: `null`},
		{name: "order string total", resource: "order", body: `{"userId":"u1","total":"59.98"}`, field: "total", expected: `"59.98"`},
		{name: "order numeric user id", resource: "order", body: `{"userId":42}`, field: "userId", expected: `42`},
		{name: "order fractional quantity", resource: "order", body: `{"items":[{"name":"A","quantity":2.5,"price":1}]}`, field: "items", expected: `[{"name":"A","quantity":2.5,"price":1}]`},
		{name: "order item extra key", resource: "order", body: `{"items":[{"name":"A","quantity":1,"price":1,"sku":"x"}]}`, field: "items", expected: `[{"name":"A","quantity":1,"price":1,"sku":"x"}]`},
		{name: "order nested total", resource: "order", body: `{"total":{"amount":5,"currency":"EUR"}}`, field: "total", expected: `{"amount":5,"currency":"EUR"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher, _ := newUserDispatcher(t)
			if tt.resource == "order" {
				dispatcher, _ = newOrderDispatcher(t)
			}

			resp := dispatcher.Handle(context.Background(), &lambda.Request{Method: http.MethodPost, Body: []byte(tt.body)})
			if resp.StatusCode != http.StatusCreated {
				t.Fatalf("status = %d, want 201 (%s)", resp.StatusCode, resp.Body)
			}

			var body map[string]map[string]json.RawMessage
			if err := json.Unmarshal(resp.Body, &body); err != nil {
				t.Fatalf("response body is not a JSON object: %v (%s)", err, resp.Body)
			}
			record := body[tt.resource]
			if got := string(record[tt.field]); got != tt.expected {
				t.Errorf("%s = %s, want %s", tt.field, got, tt.expected)
			}
			if !createdIDPattern.MatchString(strings.Trim(string(record["id"]), `"`)) {
				t.Errorf("id = %s, want 9 base-36 characters", record["id"])
			}
		})
	}
}

func TestResourceHandlers_MissingID(t *testing.T) {
	tests := []struct {
		name     string
		handler  ResourceHandler
		expected string
	}{
		{name: "user", handler: NewUserHandler(services.NewUserService(nil), ResponseOptions{}), expected: `{"message":"User ID is required"}`},
		{name: "order", handler: NewOrderHandler(services.NewOrderService(nil), ResponseOptions{}), expected: `{"message":"Order ID is required"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.handler.HandleGet(context.Background(), &lambda.Request{Method: http.MethodGet})
			if err != nil {
				t.Fatalf("HandleGet() error = %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest || string(resp.Body) != tt.expected {
				t.Errorf("response = %d %s, want 400 %s", resp.StatusCode, resp.Body, tt.expected)
			}
		})
	}
}

type faultyHandler struct {
	panicValue interface{}
	err        error
}

func (f *faultyHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if f.panicValue != nil {
		panic(f.panicValue)
	}
	return nil, f.err
}

func (f *faultyHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return f.HandleCreate(ctx, req)
}

func TestResourceDispatcher_FaultBoundary(t *testing.T) {
	tests := []struct {
		name    string
		handler *faultyHandler
	}{
		{name: "panic with string", handler: &faultyHandler{panicValue: "secret detail"}},
		{name: "panic with error", handler: &faultyHandler{panicValue: errors.New("secret detail")}},
		{name: "returned error", handler: &faultyHandler{err: errors.New("secret detail")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			dispatcher := NewResourceDispatcher("widget", "widgetId", tt.handler, ResponseOptions{}, logger)

			resp := dispatcher.Handle(context.Background(), &lambda.Request{Method: http.MethodPost})
			if resp.StatusCode != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", resp.StatusCode)
			}
			if string(resp.Body) != `{"message":"Internal server error"}` {
				t.Errorf("body = %s", resp.Body)
			}
			if strings.Contains(string(resp.Body), "secret") {
				t.Error("fault detail leaked into response")
			}

			last := hook.LastEntry()
			if last == nil || last.Level != logrus.ErrorLevel {
				t.Fatalf("Expected the fault to be logged at error level, got %+v", last)
			}
		})
	}
}

func TestResourceDispatcher_NoMatchFromHandler(t *testing.T) {
	logger, _ := test.NewNullLogger()
	dispatcher := NewResourceDispatcher("widget", "widgetId", &faultyHandler{}, ResponseOptions{}, logger)

	resp := dispatcher.Handle(context.Background(), &lambda.Request{Method: http.MethodPost})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
