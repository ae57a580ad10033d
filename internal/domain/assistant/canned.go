package assistant

type cannedReply struct {
	content   string
	emergency bool
	actions   []QuickAction
}

var canned = map[Topic]cannedReply{
	TopicVisa: {
		content: "For visa requirements, I'll need to know your specific situation. Here's general information:\n\n" +
			"**Student Visa Requirements:**\n" +
			"• Acceptance letter from educational institution\n" +
			"• Proof of financial resources\n" +
			"• Health insurance coverage\n" +
			"• Academic transcripts and certificates\n" +
			"• Language proficiency test results\n" +
			"• Passport valid for at least 6 months\n\n" +
			"**Processing Time:** Typically 2-8 weeks depending on country and visa type.\n\n" +
			"Would you like specific information for a particular country?",
		actions: []QuickAction{
			{ID: "germany", Label: "Germany Requirements", Action: "germany_visa"},
			{ID: "usa", Label: "USA Requirements", Action: "usa_visa"},
			{ID: "uk", Label: "UK Requirements", Action: "uk_visa"},
			{ID: "canada", Label: "Canada Requirements", Action: "canada_visa"},
		},
	},
	TopicEmergency: {
		content: "**Emergency Information:**\n\n" +
			"**Universal Emergency Numbers:**\n" +
			"• Police: Varies by country (911, 112, 999, 110)\n" +
			"• Medical Emergency: Usually same as police\n" +
			"• Fire Services: Usually same as police\n\n" +
			"**Important Steps:**\n" +
			"1. Stay calm and assess the situation\n" +
			"2. Call emergency services immediately\n" +
			"3. Provide clear location information\n" +
			"4. Contact your embassy if needed\n" +
			"5. Notify family/friends",
		emergency: true,
		actions: []QuickAction{
			{ID: "embassy", Label: "Find Embassy", Action: "find_embassy"},
			{ID: "hospital", Label: "Nearest Hospital", Action: "find_hospital"},
			{ID: "police", Label: "Police Station", Action: "find_police"},
		},
	},
	TopicCulture: {
		content: "**Cultural Etiquette Guide:**\n\n" +
			"• Research local customs before arrival\n" +
			"• Observe and follow local behavior patterns\n" +
			"• Ask locals when unsure about customs\n" +
			"• Be respectful of religious and cultural practices\n" +
			"• Learn basic greetings in local language\n\n" +
			"Which specific cultural aspect would you like to learn about?",
		actions: []QuickAction{
			{ID: "greetings", Label: "Greeting Customs", Action: "greeting_customs"},
			{ID: "dining", Label: "Dining Etiquette", Action: "dining_etiquette"},
			{ID: "business", Label: "Business Culture", Action: "business_culture"},
		},
	},
	TopicSafety: {
		content: "**Safety Information:**\n\n" +
			"• Register with your embassy upon arrival\n" +
			"• Keep copies of important documents\n" +
			"• Share your itinerary with family/friends\n" +
			"• Stay aware of local news and alerts\n\n" +
			"**Common Safety Concerns:** petty theft, scams targeting visitors, transport safety.",
		actions: []QuickAction{
			{ID: "alerts", Label: "Safety Alerts", Action: "safety_alerts"},
			{ID: "scams", Label: "Common Scams", Action: "common_scams"},
			{ID: "transport", Label: "Transport Safety", Action: "transport_safety"},
		},
	},
	TopicGeneral: {
		content: "I understand you're asking about %q. Let me help you with that.\n\n" +
			"I can provide information about:\n" +
			"• Visa and immigration procedures\n" +
			"• Safety guidelines and emergency contacts\n" +
			"• Cultural customs and etiquette\n" +
			"• Document requirements and processes\n" +
			"• Local services and resources\n\n" +
			"Could you please be more specific?",
		actions: []QuickAction{
			{ID: "visa", Label: "Visa Help", Action: "visa_help"},
			{ID: "safety", Label: "Safety Info", Action: "safety_help"},
			{ID: "culture", Label: "Cultural Guide", Action: "culture_help"},
		},
	},
}

var welcome = []string{
	"What documents do I need for a student visa?",
	"How do I find emergency services in my area?",
	"What are important cultural customs to know?",
	"How do I register with local authorities?",
}

var suggestions = map[Topic][]string{
	TopicVisa: {
		"How long does visa processing take?",
		"What if my visa application is rejected?",
		"Can I work with a student visa?",
		"How do I extend my visa?",
	},
	TopicSafety: {
		"What areas should I avoid?",
		"How do I report a crime?",
		"What should I do if I lose my passport?",
		"Emergency contact numbers",
	},
	TopicCulture: {
		"What are common social customs?",
		"How do I greet people properly?",
		"What should I wear in different situations?",
		"How do tipping customs work?",
	},
	TopicEmergency: {
		"Nearest hospital location",
		"How to call emergency services",
		"Embassy contact information",
		"What to do in natural disasters",
	},
}

var actionPrompts = map[string]string{
	"visa_help":        "What specific visa requirements do you need help with?",
	"safety_help":      "What safety information are you looking for?",
	"culture_help":     "Which cultural aspects would you like to learn about?",
	"emergency_help":   "What emergency information do you need?",
	"germany_visa":     "Tell me about student visa requirements for Germany",
	"usa_visa":         "What are the visa requirements for studying in the USA?",
	"uk_visa":          "What are the visa requirements for studying in the UK?",
	"canada_visa":      "What are the visa requirements for studying in Canada?",
	"find_embassy":     "Help me find my embassy contact information",
	"find_hospital":    "Where is the nearest hospital?",
	"find_police":      "Where is the nearest police station?",
	"greeting_customs": "How should I greet people in this culture?",
	"dining_etiquette": "What are the dining customs I should know?",
	"business_culture": "What should I know about the local business culture?",
	"safety_alerts":    "Are there any current safety alerts I should know about?",
	"common_scams":     "What are the common scams targeting visitors?",
	"transport_safety": "How do I stay safe on public transport?",
}
