package assistant

import "strings"

// Agent names the specialised responder a query is routed to.
type Agent string

const (
	AgentEmergency  Agent = "emergency"
	AgentDoctor     Agent = "doctor"
	AgentDiagnostic Agent = "diagnostic"
	AgentHospital   Agent = "hospital"
	AgentGeneral    Agent = "general"
)

// DisplayName is reported to clients as agent_used.
func (a Agent) DisplayName() string {
	switch a {
	case AgentEmergency:
		return "Emergency Services Agent"
	case AgentDoctor:
		return "Doctor Information Agent"
	case AgentDiagnostic:
		return "Diagnostic Information Agent"
	case AgentHospital:
		return "Hospital Comparison Agent"
	default:
		return "General Assistant"
	}
}

type route struct {
	agent    Agent
	keywords []string
}

// routes are evaluated in order; the first keyword hit wins.
var routes = []route{
	{AgentEmergency, []string{
		"emergency", "urgent", "911", "ambulance", "critical",
		"heart attack", "stroke", "accident", "trauma",
	}},
	{AgentDoctor, []string{
		"doctor", "appointment", "book", "schedule", "available slot",
		"consultation", "visit", "check-up", "specialist",
	}},
	{AgentDiagnostic, []string{
		"test", "lab", "blood", "screening", "diagnostic", "package",
		"checkup", "examination", "scan", "x-ray", "mri", "ct",
	}},
	{AgentHospital, []string{
		"hospital", "compare", "facility", "medical center",
		"healthcare", "clinic",
	}},
}

// Classify picks the agent for a message by case-insensitive substring match.
func Classify(message string) Agent {
	lower := strings.ToLower(message)
	for _, r := range routes {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				return r.agent
			}
		}
	}
	return AgentGeneral
}
