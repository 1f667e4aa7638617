package echoapi

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edunotify/core"
)

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Warn(string, ...interface{})  {}
func (l *recordingLogger) Fatal(string, ...interface{}) {}

func (l *recordingLogger) Error(msg string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprint(append([]interface{}{msg}, args...)...))
}

func Test_toGQLError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantMsg    string
		wantCode   string
		wantFields map[string]string
		wantLogged bool
		wantSignal bool
	}{
		{name: "not found", err: core.NewNotFoundError("Grade not found"), wantMsg: "Grade not found", wantCode: "NOT_FOUND"},
		{name: "wrapped kind", err: errors.Wrap(core.ErrNotAuthorized, "checking"), wantMsg: "Not authorized", wantCode: "FORBIDDEN"},
		{
			name:       "validation",
			err:        core.NewValidationError(nil, core.FieldError{Field: "score", Error: "score must be 0 or greater"}),
			wantMsg:    "score: score must be 0 or greater",
			wantCode:   "BAD_USER_INPUT",
			wantFields: map[string]string{"score": "score must be 0 or greater"},
		},
		{name: "internal", err: errors.New("connection refused"), wantMsg: internalErrorMsg, wantCode: "INTERNAL_SERVER_ERROR", wantLogged: true},
		{
			name:       "internal kind",
			err:        core.NewError(core.KindInternal, "boom"),
			wantMsg:    internalErrorMsg,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantLogged: true,
		},
		{
			name:       "shutdown",
			err:        errors.Wrap(core.NewShutdownError("integrity issue"), "saving"),
			wantMsg:    internalErrorMsg,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantLogged: true,
			wantSignal: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := new(recordingLogger)
			signaled := false

			got := toGQLError(tt.err, logger, func() { signaled = true })
			assert.Equal(t, tt.wantMsg, got.Error())
			assert.Equal(t, tt.wantCode, got.Extensions()["code"])
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, got.Extensions()["fields"])
			} else {
				assert.NotContains(t, got.Extensions(), "fields")
			}
			assert.Equal(t, tt.wantLogged, len(logger.errors) == 1)
			assert.Equal(t, tt.wantSignal, signaled)
		})
	}
}
