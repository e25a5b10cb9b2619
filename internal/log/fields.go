package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldUserID     = "user_id"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldDay        = "day"
	FieldCategory   = "category"
	FieldSumCents   = "sum_cents"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentCosts   = "costs"
	ComponentReports = "reports"
	ComponentUsers   = "users"
	ComponentAdmin   = "admin"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentAudit   = "audit"
	ComponentWorker  = "worker"
)
