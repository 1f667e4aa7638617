package echoapi

import (
	"testing"

	metricsvc "github.com/trezcool/edunotify/services/metrics"
)

func TestOperationType(t *testing.T) {
	tests := []struct {
		name     string
		document string
		opName   string
		want     string
	}{
		{name: "shorthand", document: "  { events { id } }", want: metricsvc.OpQuery},
		{name: "named query", document: "query Teachers { teachers { id } }", want: metricsvc.OpQuery},
		{name: "mutation", document: "mutation { login(email: \"a@b.cd\", password: \"secret\") { token } }", want: metricsvc.OpMutation},
		{name: "leading comment", document: "# mutation Fake\nquery Me { me { id } }", want: metricsvc.OpQuery},
		{
			name:     "selected operation",
			document: "query Me { me { id } }\nmutation Login { login(email: \"a@b.cd\", password: \"secret\") { token } }",
			opName:   "Login",
			want:     metricsvc.OpMutation,
		},
		{name: "unknown operation name", document: "{ events { id } }", opName: "junk", want: metricsvc.OpOther},
		{name: "garbage", document: "not graphql", want: metricsvc.OpOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := operationType(tt.document, tt.opName); got != tt.want {
				t.Errorf("operationType() = %q, want %q", got, tt.want)
			}
		})
	}
}
