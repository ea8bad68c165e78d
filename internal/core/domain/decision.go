package domain

// DecisionOutcome tags the terminal state of the confidence gate.
type DecisionOutcome string

const (
	OutcomeDeferred  DecisionOutcome = "deferred"
	OutcomeGenerated DecisionOutcome = "generated"
)

// ResponseDecision is a closed two-variant union: exactly one of
// Deferred/Generated is set, selected by Outcome.
type ResponseDecision struct {
	Outcome   DecisionOutcome    `json:"outcome"`
	Deferred  *DeferredDecision  `json:"deferred,omitempty"`
	Generated *GeneratedResponse `json:"generated,omitempty"`
}

// DeferredDecision routes the email to a human instead of auto-responding.
type DeferredDecision struct {
	Reason              string     `json:"reason"`
	SuggestedDepartment Department `json:"suggested_department"`
}

type GeneratedResponse struct {
	ResponseText string       `json:"response_text"`
	Department   Department   `json:"department"`
	Inventory    []StockLevel `json:"inventory_data,omitempty"`
	Confidence   float64      `json:"confidence"`
	ModelUsed    string       `json:"model_used"`
}

func Defer(reason string, department Department) ResponseDecision {
	return ResponseDecision{
		Outcome:  OutcomeDeferred,
		Deferred: &DeferredDecision{Reason: reason, SuggestedDepartment: department},
	}
}

func Generate(generated GeneratedResponse) ResponseDecision {
	return ResponseDecision{
		Outcome:   OutcomeGenerated,
		Generated: &generated,
	}
}

func (d ResponseDecision) RequiresHuman() bool {
	return d.Outcome == OutcomeDeferred
}
