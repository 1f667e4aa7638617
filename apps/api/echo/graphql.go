package echoapi

import (
	"context"
	_ "embed" // schema.graphql
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	metricsvc "github.com/trezcool/edunotify/services/metrics"
)

//go:embed schema.graphql
var schemaSDL string

const maxQueryDepth = 10

// NewSchema parses the API schema against r. It panics if a field has no resolver.
func NewSchema(r *Resolver, logger core.Logger) *graphql.Schema {
	return graphql.MustParseSchema(schemaSDL, r,
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(panicLogger{logger}),
	)
}

type panicLogger struct {
	logger core.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.Error("graphql: panic occurred", map[string]interface{}{"panic": value}, access.FromContext(ctx))
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type graphqlHandler struct {
	schema  *graphql.Schema
	metrics *metricsvc.Metrics
}

// serve executes GET ?query= and POST JSON requests.
// Execution errors are part of the response, sent with 200 OK.
func (h *graphqlHandler) serve(ctx echo.Context) error {
	var req graphqlRequest
	if ctx.Request().Method == http.MethodGet {
		req.Query = ctx.QueryParam("query")
		req.OperationName = ctx.QueryParam("operationName")
		if vars := ctx.QueryParam("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				return errInvalidRequest
			}
		}
	} else if err := json.NewDecoder(ctx.Request().Body).Decode(&req); err != nil {
		return errInvalidRequest
	}
	if strings.TrimSpace(req.Query) == "" {
		return errMissingQuery
	}

	start := time.Now()
	resp := h.schema.Exec(ctx.Request().Context(), req.Query, req.OperationName, req.Variables)
	for _, qerr := range resp.Errors {
		if qerr.Extensions == nil { // parse & validation errors
			qerr.Extensions = map[string]interface{}{"code": "GRAPHQL_VALIDATION_FAILED"}
		}
	}
	if h.metrics != nil {
		h.metrics.ObserveRequest(operationType(req.Query, req.OperationName), len(resp.Errors) > 0, time.Since(start))
	}
	return ctx.JSON(http.StatusOK, resp)
}

var (
	gqlComment      = regexp.MustCompile(`#[^\n]*`)
	gqlOpDefinition = regexp.MustCompile(`(?:^|[\s}])(query|mutation|subscription)\b\s*([_A-Za-z][_0-9A-Za-z]*)?`)
)

// operationType returns the type of the operation of document selected by name:
// query, mutation or subscription, metricsvc.OpOther when it cannot be found.
func operationType(document, name string) string {
	document = strings.TrimSpace(gqlComment.ReplaceAllString(document, ""))
	if name == "" && strings.HasPrefix(document, "{") {
		return metricsvc.OpQuery // shorthand query
	}
	for _, m := range gqlOpDefinition.FindAllStringSubmatch(document, -1) {
		if name == "" || m[2] == name {
			return m[1]
		}
	}
	return metricsvc.OpOther
}
