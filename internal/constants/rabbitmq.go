package constants

// Топология очереди заявок
const (
	InquiriesExchange      = "inquiries"
	InquiriesQueue         = "inquiries.relay"
	InquiriesRetryExchange = "inquiries.retry"
	InquiriesRetryQueue    = "inquiries.relay.wait"
	InquiriesDLX           = "inquiries.dlx"
	InquiriesDLQ           = "inquiries.relay.dlq"
)

// Ключи маршрутизации
const (
	RoutingKeyInquirySubmitted = "inquiry.submitted"
	RoutingKeyInquiryFailed    = "inquiry.failed"
)

// Заголовки сообщений
const (
	HeaderEventType    = "event-type"
	HeaderEventVersion = "event-version"
	HeaderTraceID      = "x-trace-id"
)
