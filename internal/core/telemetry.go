package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
// 專案全域建議都寫這裡，方便集中管理
type TraceSpanName string

const (
	SpanHttpRequest         TraceSpanName = "http_request"
	SpanLoggerMiddleware    TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware  TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware      TraceSpanName = "cors_middleware"
	SpanResponseMiddleware  TraceSpanName = "response_middleware"
	SpanAuthMiddleware      TraceSpanName = "auth_middleware"
	SpanManagerMiddleware   TraceSpanName = "manager_middleware"
	SpanRateLimitMiddleware TraceSpanName = "ratelimit_middleware"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal   MetricName = "requests_total"
	MetricHttpRequestDuration MetricName = "request_duration_seconds"
	MetricApproveTotal        MetricName = "request_approve_total"
	MetricReturnTotal         MetricName = "request_return_total"
	MetricRateLimitTotal      MetricName = "rate_limited_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelOutcome  MetricLabelName = "outcome"
)

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"url.path"`
	UrlScheme         string `trace:"url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanTraceID       string `trace:"trace.id"`
}

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"response.path"`
	Method     string  `trace:"response.method"`
	Status     int     `trace:"response.status"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.duration_ms"`
	Data       string  `trace:"response.data"`
}

type TracePanicMeta struct {
	Path       string  `trace:"panic.path"`
	Method     string  `trace:"panic.method"`
	ClientIP   string  `trace:"panic.client_ip"`
	UserAgent  string  `trace:"panic.user_agent"`
	DurationMs float64 `trace:"panic.duration_ms"`
	Message    string  `trace:"panic.message"`
	Stack      string  `trace:"panic.stack"`
	Status     int     `trace:"panic.status"`
}

// 授權閘門
type TraceAuthMeta struct {
	Email  string `trace:"auth.email,omitempty"`
	Role   string `trace:"auth.role,omitempty"`
	Status string `trace:"auth.status"`
}

// 供 Redis 限流 Consume / Reset 使用
type TraceRateLimitMeta struct {
	RequesterMail string `trace:"rl.requester_mail"`
	Limit         int    `trace:"rl.limit_count"`
	WindowSec     int64  `trace:"rl.window_sec"`
	Remaining     int    `trace:"rl.remaining,omitempty"`
	TTL           int64  `trace:"rl.ttl_sec,omitempty"`
	Op            string `trace:"rl.op"` // "consume" / "reset" / "get"
}

// 生命週期引擎的兩段式交易
type TraceLifecycleMeta struct {
	RequestID     string `trace:"lifecycle.request_id,omitempty"`
	AssetID       string `trace:"lifecycle.asset_id,omitempty"`
	RequesterMail string `trace:"lifecycle.requester_mail,omitempty"`
	Transition    string `trace:"lifecycle.transition"`
	Outcome       string `trace:"lifecycle.outcome,omitempty"`
	Compensated   bool   `trace:"lifecycle.compensated,omitempty"`
}

type TraceListMeta struct {
	Scope       string `trace:"list.scope,omitempty"`
	FilterRule  string `trace:"list.filter_rule,omitempty"`
	ResultCount int    `trace:"result.count,omitempty"`
}
