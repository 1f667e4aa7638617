package core

// Logger logs messages, errors and their context.
// Expected args: error, map[string]interface{}, access.Identity (the logged in user).
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
