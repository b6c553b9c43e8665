package chat

import "strings"

type fallbackRule struct {
	name     string
	keywords []string
	response string
}

func (r fallbackRule) matches(lower string) bool {
	if len(r.keywords) == 0 {
		return true
	}
	for _, k := range r.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// fallbackRules are checked in order; the first match wins and the last rule
// always matches.
var fallbackRules = []fallbackRule{
	{
		name:     "hospital",
		keywords: []string{"hospital", "compare"},
		response: "I can help you find and compare hospitals! I found several options:\n\n" +
			"🏥 NewYork-Presbyterian Hospital (4.8★)\n" +
			"🏥 Mount Sinai Hospital (4.7★)\n" +
			"🏥 NYU Langone Health (4.9★)\n\n" +
			"Would you like to see detailed comparisons? You can also visit our Hospital Comparison page for more filters and options.",
	},
	{
		name:     "doctor",
		keywords: []string{"doctor", "cardiologist", "appointment"},
		response: "I can help you find doctors! Here are some available cardiologists:\n\n" +
			"👨‍⚕️ Dr. Sarah Johnson (Cardiology, 4.9★, $250)\n" +
			"👨‍⚕️ Dr. Michael Chen (Neurology, 4.8★, $275)\n\n" +
			"Would you like to book an appointment? Visit our Doctor Booking page to see availability and schedule online.",
	},
	{
		name:     "lab_test",
		keywords: []string{"test", "lab", "blood", "checkup"},
		response: "For a comprehensive health checkup, I recommend:\n\n" +
			"🔬 Complete Blood Count (CBC) - $25\n" +
			"🔬 Lipid Profile - $35\n" +
			"🔬 Blood Sugar (Fasting) - $15\n" +
			"🔬 Thyroid Profile - $65\n\n" +
			"We also have health screening packages starting at $99! Visit our Lab Tests page to see all options and prices.",
	},
	{
		name:     "diabetes",
		keywords: []string{"diabetes", "sugar"},
		response: "Common symptoms of diabetes include:\n\n" +
			"• Increased thirst and frequent urination\n" +
			"• Extreme hunger\n" +
			"• Unexplained weight loss\n" +
			"• Fatigue\n" +
			"• Blurred vision\n" +
			"• Slow-healing sores\n\n" +
			"I recommend getting tested with:\n" +
			"🔬 Blood Sugar (Fasting) - $15\n" +
			"🔬 HbA1c Test - $45\n\n" +
			"Would you like to book these tests?",
	},
	{
		name:     "emergency",
		keywords: []string{"emergency", "urgent", "911"},
		response: "⚠️ For life-threatening emergencies, please CALL 911 immediately!\n\n" +
			"For non-emergency urgent care, I can help you find:\n" +
			"🚨 Nearest emergency rooms\n" +
			"🚨 Ambulance services\n" +
			"🚨 24/7 urgent care centers\n\n" +
			"Visit our Emergency Services page for detailed information and locations.",
	},
	{
		name: "default",
		response: "I'm your AI health assistant powered by HealthSense AI. I can help you:\n\n" +
			"🏥 Find and compare hospitals\n" +
			"👨‍⚕️ Search for doctors and book appointments\n" +
			"🔬 Browse lab tests and prices\n" +
			"🚨 Locate emergency services\n" +
			"💊 Answer general health questions\n\n" +
			"What would you like to know more about?",
	},
}

// FallbackReply synthesises a canned reply for when the assistant backend is
// unreachable. Matching is a case-insensitive substring test.
func FallbackReply(message string) string {
	_, text := matchFallback(message)
	return text
}

func matchFallback(message string) (string, string) {
	lower := strings.ToLower(message)
	for _, r := range fallbackRules {
		if r.matches(lower) {
			return r.name, r.response
		}
	}
	last := fallbackRules[len(fallbackRules)-1]
	return last.name, last.response
}
