package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := map[string]Agent{
		"I think I'm having a heart attack": AgentEmergency,
		"Is this URGENT?":                   AgentEmergency,
		"urgent: book a doctor":             AgentEmergency,
		"I need a doctor":                   AgentDoctor,
		"Can I schedule a consultation?":    AgentDoctor,
		"book a blood test":                 AgentDoctor,
		"How much is a lipid test?":         AgentDiagnostic,
		"do you offer an MRI":               AgentDiagnostic,
		"Compare hospitals in Brooklyn":     AgentHospital,
		"nearest clinic":                    AgentHospital,
		"hello":                             AgentGeneral,
		"What are the symptoms of the flu?": AgentGeneral,
	}
	for message, want := range cases {
		t.Run(message, func(t *testing.T) {
			assert.Equal(t, want, Classify(message))
		})
	}
}

func TestAgentDisplayName(t *testing.T) {
	assert.Equal(t, "Emergency Services Agent", AgentEmergency.DisplayName())
	assert.Equal(t, "Doctor Information Agent", AgentDoctor.DisplayName())
	assert.Equal(t, "Diagnostic Information Agent", AgentDiagnostic.DisplayName())
	assert.Equal(t, "Hospital Comparison Agent", AgentHospital.DisplayName())
	assert.Equal(t, "General Assistant", AgentGeneral.DisplayName())
}
