package respond

import "strings"

// PersonaProfile shapes the assistant's register and how much it says aloud.
type PersonaProfile struct {
	ID           string
	DisplayName  string
	SystemStyle  string
	VerbosityCap int
}

func Profiles() map[string]PersonaProfile {
	return map[string]PersonaProfile{
		"warm": {
			ID:           "warm",
			DisplayName:  "Warm",
			SystemStyle:  "empathetic, conversational, supportive",
			VerbosityCap: 350,
		},
		"professional": {
			ID:           "professional",
			DisplayName:  "Professional",
			SystemStyle:  "clear, factual, concise",
			VerbosityCap: 280,
		},
		"concise": {
			ID:           "concise",
			DisplayName:  "Concise",
			SystemStyle:  "brief, high-signal, direct",
			VerbosityCap: 180,
		},
	}
}

// ProfileFor returns the named profile, defaulting to warm.
func ProfileFor(id string) PersonaProfile {
	profiles := Profiles()
	if p, ok := profiles[strings.ToLower(strings.TrimSpace(id))]; ok {
		return p
	}
	return profiles["warm"]
}

// capText bounds spoken output to the persona's verbosity cap, cutting at a
// word boundary.
func capText(text string, cap int) string {
	if cap <= 0 || len([]rune(text)) <= cap {
		return text
	}
	runes := []rune(text)[:cap]
	cut := strings.LastIndexByte(string(runes), ' ')
	if cut <= 0 {
		return string(runes)
	}
	return strings.TrimRight(string(runes)[:cut], " ,;:") + "..."
}
