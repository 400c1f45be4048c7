package service

// Demo request types.
const (
	TypeGeneral = "general"
	TypeModule  = "module"
	TypeFull    = "full"
	TypePricing = "pricing"
)

var nextSteps = map[string][]string{
	TypeGeneral: {
		"Our sales team will review your request",
		"You'll receive a call within 24 hours",
		"We'll schedule a personalized demo",
	},
	TypeModule: {
		"We'll prepare a focused demo of the requested module",
		"Our specialist will contact you within 24 hours",
		"You'll see exactly how this feature works for your business",
	},
	TypeFull: {
		"We'll create a comprehensive demo experience",
		"Our team will contact you to understand your specific needs",
		"We'll schedule a detailed walkthrough of all features",
	},
	TypePricing: {
		"Our sales team will prepare a customized quote",
		"You'll receive pricing information within 24 hours",
		"We'll discuss implementation timeline and options",
	},
}

// NextSteps returns the follow-up steps quoted for a request type. Unknown
// types get the general steps. The returned slice is a copy.
func NextSteps(requestType string) []string {
	steps, ok := nextSteps[requestType]
	if !ok {
		steps = nextSteps[TypeGeneral]
	}
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}
