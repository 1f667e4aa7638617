package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	. "github.com/trezcool/edunotify/apps/api/echo"
	"github.com/trezcool/edunotify/core/user"
	"github.com/trezcool/edunotify/services/logger"
	"github.com/trezcool/edunotify/services/metrics"
	"github.com/trezcool/edunotify/tests"
)

type fixture struct {
	app     *Server
	env     *testutil.Env
	school  testutil.School
	metrics *metricsvc.Metrics
}

func setup(t *testing.T, configure ...func(*Options)) fixture {
	t.Helper()
	mtrcs := metricsvc.New()
	env := testutil.NewEnv(mtrcs)
	school := testutil.NewSchool(t, env)

	opts := &Options{
		Conf:          env.Conf,
		Logger:        logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), env.Conf),
		Metrics:       mtrcs,
		Authenticator: env.Authenticator,
		Services: Services{
			Auth:      env.AuthSvc,
			Users:     env.UserSvc,
			Students:  env.StudentSvc,
			Courses:   env.CourseSvc,
			Grades:    env.GradeSvc,
			Behavior:  env.BehaviorSvc,
			Events:    env.EventSvc,
			Resources: env.ResourceSvc,
		},
		DisableReqLogs: true,
	}
	for _, conf := range configure {
		conf(opts)
	}
	app := NewServer(opts)
	return fixture{app: app, env: env, school: school, metrics: mtrcs}
}

func (f fixture) token(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := f.env.Tokens.Issue(usr)
	if err != nil {
		t.Fatalf("token() failed: %v", err)
	}
	return token
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type gqlError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// code returns the extensions.code of the first error, "" if none.
func (r gqlResponse) code() string {
	if len(r.Errors) == 0 {
		return ""
	}
	code, _ := r.Errors[0].Extensions["code"].(string)
	return code
}

type gqlTest struct {
	name      string
	query     string
	variables map[string]interface{}
	token     string
	wantData  []byte
	wantCode  string
	wantMsg   string
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// execute POSTs a GraphQL request and decodes the response.
func (f fixture) execute(t *testing.T, token, query string, variables map[string]interface{}) gqlResponse {
	t.Helper()
	body := marchallObj(t, map[string]interface{}{"query": query, "variables": variables})
	req, rec := newAuthRequest(http.MethodPost, "/graphql", token, body)
	f.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("execute() code = %v; want %v (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp gqlResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("execute() failed to decode %s: %v", rec.Body.String(), err)
	}
	return resp
}

func (f fixture) run(t *testing.T, tt gqlTest) gqlResponse {
	t.Helper()
	resp := f.execute(t, tt.token, tt.query, tt.variables)
	if got := resp.code(); got != tt.wantCode {
		t.Errorf("failed! code = %q; wantCode %q (errors %v)", got, tt.wantCode, resp.Errors)
	}
	if tt.wantMsg != "" && (len(resp.Errors) == 0 || resp.Errors[0].Message != tt.wantMsg) {
		t.Errorf("failed! errors = %v; wantMsg %q", resp.Errors, tt.wantMsg)
	}
	if tt.wantData != nil {
		ok, err := jsonBytesEqual(resp.Data, tt.wantData)
		if err != nil {
			t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
		}
		if !ok {
			t.Errorf("failed! data = %v; wantData %v", string(resp.Data), string(tt.wantData))
		}
	}
	return resp
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
