package domain

import "time"

// Intent is the classified purpose of an inbound email.
type Intent string

const (
	IntentPartsOrder      Intent = "parts_order"
	IntentServiceInquiry  Intent = "service_inquiry"
	IntentInvoiceRequest  Intent = "invoice_request"
	IntentInventoryCheck  Intent = "inventory_check"
	IntentGeneralInquiry  Intent = "general_inquiry"
	IntentComplaint       Intent = "complaint"
	IntentTransferRequest Intent = "transfer_request"
)

func (i Intent) Valid() bool {
	switch i {
	case IntentPartsOrder, IntentServiceInquiry, IntentInvoiceRequest,
		IntentInventoryCheck, IntentGeneralInquiry, IntentComplaint, IntentTransferRequest:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

func (u Urgency) Valid() bool {
	return u == UrgencyLow || u == UrgencyMedium || u == UrgencyHigh
}

// InboundEmail is one customer email as handed to the pipeline.
// Immutable for the duration of a pipeline run.
type InboundEmail struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Classification struct {
	Intent      Intent   `json:"intent"`
	Confidence  float64  `json:"confidence"`
	KeyEntities []string `json:"key_entities"`
	Urgency     Urgency  `json:"urgency"`
}

// ExtractedEntities is best effort: any field may be absent.
type ExtractedEntities struct {
	PartSKUs     []string       `json:"part_skus"`
	Location     string         `json:"location,omitempty"`
	CustomerName string         `json:"customer_name,omitempty"`
	ContactInfo  string         `json:"contact_info,omitempty"`
	Quantities   map[string]int `json:"quantities,omitempty"`
}

// EmptyEntities is the documented fallback when extraction fails.
func EmptyEntities() ExtractedEntities {
	return ExtractedEntities{PartSKUs: []string{}, Quantities: map[string]int{}}
}

// PipelineResult bundles everything one pipeline run produced.
type PipelineResult struct {
	EmailID        string            `json:"email_id"`
	Classification Classification    `json:"classification"`
	Entities       ExtractedEntities `json:"entities"`
	Decision       ResponseDecision  `json:"decision"`
	ProcessedAt    time.Time         `json:"processed_at"`
}

// EmailRecord is the persisted trace of an inbound email and, once the
// pipeline ran, its outcome.
type EmailRecord struct {
	ID            string     `json:"id"`
	EmailID       string     `json:"email_id"`
	Sender        string     `json:"sender"`
	Subject       string     `json:"subject"`
	Body          string     `json:"body"`
	Intent        Intent     `json:"intent,omitempty"`
	Confidence    float64    `json:"confidence"`
	Department    Department `json:"department,omitempty"`
	RequiresHuman bool       `json:"requires_human"`
	Reason        string     `json:"reason,omitempty"`
	ResponseText  string     `json:"response_text,omitempty"`
	ModelUsed     string     `json:"model_used,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

const (
	EmailStatusReceived  = "received"
	EmailStatusProcessed = "processed"
	EmailStatusFailed    = "failed"
)
