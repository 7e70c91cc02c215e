package graphapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pagegraph/application/ports"
	"pagegraph/domain/core/entities"
	vo "pagegraph/domain/core/valueobjects"
	"pagegraph/pkg/errors"
	"pagegraph/pkg/observability"

	fb "github.com/huandu/facebook/v2"
	"go.uber.org/zap"
)

// UpstreamRecorder receives one observation per upstream call
type UpstreamRecorder interface {
	ObserveUpstream(operation string, ok bool, duration time.Duration)
}

// Credential is the access token and API version used for every call. It is
// created once at startup and never changes.
type Credential struct {
	AccessToken string
	Version     string
}

// Client implements ports.GraphAPI over a single Graph API session.
// It never retries and never caches: an upstream failure is returned as is.
type Client struct {
	session  *fb.Session
	tracer   *observability.Tracer
	recorder UpstreamRecorder
	logger   *zap.Logger
}

var _ ports.GraphAPI = (*Client)(nil)

// NewClient creates a Graph API client. httpClient carries the transport
// (timeouts, base URL override); nil uses http.DefaultClient.
func NewClient(cred Credential, httpClient *http.Client, tracer *observability.Tracer, recorder UpstreamRecorder, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cred.AccessToken) == "" {
		return nil, errors.NewConfigurationError("FACEBOOK_ACCESS_TOKEN environment variable is not set")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	session := &fb.Session{
		Version:    NormalizeVersion(cred.Version),
		HttpClient: httpClient,
	}
	session.SetAccessToken(cred.AccessToken)

	logger.Info("Facebook client initialized", zap.String("version", session.Version))

	return &Client{
		session:  session,
		tracer:   tracer,
		recorder: recorder,
		logger:   logger,
	}, nil
}

// NormalizeVersion turns "2.12" into "v2.12"; an empty version stays empty
// and selects the SDK default.
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if version == "" || strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

// GetObject implements ports.GraphAPI
func (c *Client) GetObject(ctx context.Context, id string, fields vo.FieldSpec) (entities.Record, error) {
	params := fb.Params{}
	if !fields.IsEmpty() {
		params["fields"] = fields.String()
	}

	res, err := c.call(ctx, "get_object", id, "/"+url.PathEscape(id), params)
	if err != nil {
		return nil, err
	}
	return toRecord(res), nil
}

// GetConnection implements ports.GraphAPI
func (c *Client) GetConnection(ctx context.Context, id, connection string, fields vo.FieldSpec, limit int, extra map[string]string) (*entities.RawCollection, error) {
	params := fb.Params{}
	if !fields.IsEmpty() {
		params["fields"] = fields.String()
	}
	if limit > 0 {
		params["limit"] = limit
	}
	for k, v := range extra {
		params[k] = v
	}

	path := "/" + url.PathEscape(id) + "/" + url.PathEscape(connection)
	res, err := c.call(ctx, "get_"+connection, id, path, params)
	if err != nil {
		return nil, err
	}

	out := &entities.RawCollection{Data: []interface{}{}}
	if data, ok := res["data"].([]interface{}); ok {
		for _, item := range data {
			out.Data = append(out.Data, plain(item))
		}
	}
	if paging, ok := entities.AsRecord(plain(res["paging"])); ok {
		out.Paging = paging
	}

	c.logger.Info("Retrieved connection",
		zap.String("id", id),
		zap.String("connection", connection),
		zap.Int("count", len(out.Data)),
	)
	return out, nil
}

func (c *Client) call(ctx context.Context, operation, id, path string, params fb.Params) (fb.Result, error) {
	var res fb.Result
	start := time.Now()

	err := c.tracer.TraceFunction(ctx, "graph."+operation, func(ctx context.Context) error {
		c.tracer.AddAnnotation(ctx, "operation", operation)
		c.tracer.AddAnnotation(ctx, "entity_id", id)

		var callErr error
		res, callErr = c.session.WithContext(ctx).Get(path, params)
		return callErr
	})

	if c.recorder != nil {
		c.recorder.ObserveUpstream(operation, err == nil, time.Since(start))
	}

	if err != nil {
		appErr := classify(ctx, err).WithEntity(operation, id)
		c.logger.Error("Graph API call failed",
			zap.String("operation", operation),
			zap.String("id", id),
			zap.Int("status", appErr.HTTPStatus),
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
		return nil, appErr
	}
	return res, nil
}

// classify turns an SDK or transport error into an UpstreamError
func classify(ctx context.Context, err error) *errors.AppError {
	var fbErr *fb.Error
	if stderrors.As(err, &fbErr) {
		return errors.NewUpstreamError(StatusForCode(fbErr.Code, fbErr.ErrorSubcode), fbErr.Code, fbErr.Message).WithCause(err)
	}
	if stderrors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return errors.NewUpstreamError(http.StatusGatewayTimeout, 0, "upstream request timed out").WithCause(err)
	}
	return errors.NewUpstreamError(http.StatusBadGateway, 0, err.Error()).WithCause(err)
}

// StatusForCode maps a Graph API error code to the HTTP status surfaced to
// clients.
func StatusForCode(code, subcode int) int {
	switch {
	case code == 190 || code == 102 || code == 463 || code == 467:
		return http.StatusUnauthorized
	case code == 4 || code == 17 || code == 32 || code == 613 || (code >= 80001 && code <= 80014):
		return http.StatusTooManyRequests
	case code == 10 || (code >= 200 && code <= 299):
		return http.StatusForbidden
	case code == 803 || (code == 100 && subcode == 33):
		return http.StatusNotFound
	case code == 100:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// toRecord converts an SDK result into a plain record
func toRecord(res fb.Result) entities.Record {
	rec, _ := entities.AsRecord(plain(map[string]interface{}(res)))
	if rec == nil {
		rec = entities.Record{}
	}
	return rec
}

// plain strips the SDK's named map type from decoded values so the domain
// only ever sees map[string]interface{} and []interface{}.
func plain(v interface{}) interface{} {
	switch t := v.(type) {
	case fb.Result:
		return plain(map[string]interface{}(t))
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, vv := range t {
			out[k] = plain(vv)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, vv := range t {
			out[i] = plain(vv)
		}
		return out
	default:
		return v
	}
}

func (c *Client) String() string {
	return fmt.Sprintf("graphapi.Client(%s)", c.session.Version)
}
