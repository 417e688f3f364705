package intent

import "strings"

type Kind string

const (
	KindCreateProject    Kind = "create_project"
	KindCreateFile       Kind = "create_file"
	KindOrganizeFiles    Kind = "organize_files"
	KindAnalyzeDirectory Kind = "analyze_directory"
	KindSetReminder      Kind = "set_reminder"
	KindShowDashboard    Kind = "show_dashboard"
	KindGenericChat      Kind = "generic_chat"
	KindExit             Kind = "exit"
)

// Intent is the interpreted category of an utterance plus its arguments.
// Only the fields relevant to the Kind are populated.
type Intent struct {
	Kind Kind

	ProjectName string
	ProjectKind string

	FileName string
	Template string

	Path string

	ReminderText string
	ReminderWhen string

	Text string
}

// rule pairs a trigger with an intent constructor. Rules are evaluated in
// declaration order; the first match wins. build receives the trimmed input
// twice: once verbatim and once ASCII-folded. The fold keeps byte offsets
// identical, so marker positions found in the folded text slice the verbatim
// text safely even when the input carries multi-byte runes.
type rule struct {
	match func(lower string) bool
	build func(original, folded string) Intent
}

var exitPhrases = []string{"exit", "quit", "bye", "goodbye", "shutdown"}

var rules = []rule{
	{
		match: func(lower string) bool { return containsAnyWord(lower, exitPhrases) },
		build: func(_, _ string) Intent { return Intent{Kind: KindExit} },
	},
	{
		match: func(lower string) bool { return strings.Contains(lower, "dashboard") },
		build: func(_, _ string) Intent { return Intent{Kind: KindShowDashboard} },
	},
	{
		match: func(lower string) bool {
			return containsAny(lower, "remind", "reminder", "set timer", "schedule")
		},
		build: func(original, folded string) Intent {
			return Intent{
				Kind:         KindSetReminder,
				ReminderText: reminderText(original, folded),
				ReminderWhen: reminderWhen(folded),
			}
		},
	},
	{
		match: func(lower string) bool {
			return strings.Contains(lower, "project") && containsAny(lower, "create", "make", "start", "new")
		},
		build: func(original, folded string) Intent {
			return Intent{
				Kind:        KindCreateProject,
				ProjectName: nameAfterMarker(original, folded),
				ProjectKind: projectKind(folded),
			}
		},
	},
	{
		match: func(lower string) bool {
			return strings.Contains(lower, "file") && containsAny(lower, "create", "make", "write", "generate")
		},
		build: func(original, folded string) Intent {
			return Intent{
				Kind:     KindCreateFile,
				FileName: nameAfterMarker(original, folded),
				Template: fileTemplate(folded),
			}
		},
	},
	{
		match: func(lower string) bool {
			return containsAny(lower, "analyze", "analyse") && containsAny(lower, "directory", "folder")
		},
		build: func(original, folded string) Intent {
			return Intent{Kind: KindAnalyzeDirectory, Path: pathAfterIn(original, folded)}
		},
	},
	{
		match: func(lower string) bool {
			return containsAny(lower, "organize", "organise", "sort files", "tidy up")
		},
		build: func(original, folded string) Intent {
			return Intent{Kind: KindOrganizeFiles, Path: pathAfterIn(original, folded)}
		},
	},
}

// Interpret maps recognized text to an intent. It is deterministic: matching
// is case-insensitive substring matching against the ordered rule table, and
// unmatched input falls through to generic chat.
func Interpret(text string) Intent {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	folded := lowerASCII(trimmed)
	for _, r := range rules {
		if r.match(lower) {
			return r.build(trimmed, folded)
		}
	}
	return Intent{Kind: KindGenericChat, Text: trimmed}
}

// lowerASCII lowercases ASCII letters only. Unlike strings.ToLower it never
// changes the byte length, so indexes into the result are valid in the input.
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsAnyWord(s string, words []string) bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '\'')
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}

// nameAfterMarker pulls the word following "called" or "named", preserving
// the original casing. folded must be the lowerASCII form of original so the
// marker offset is valid in both.
func nameAfterMarker(original, folded string) string {
	for _, marker := range []string{" called ", " named "} {
		idx := strings.Index(folded, marker)
		if idx < 0 {
			continue
		}
		rest := original[idx+len(marker):]
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		return strings.Trim(fields[0], `.,!?"'`)
	}
	return ""
}

func projectKind(lower string) string {
	for _, kind := range []string{"python", "go", "golang", "web", "node"} {
		if strings.Contains(lower, kind) {
			if kind == "golang" {
				return "go"
			}
			return kind
		}
	}
	return "generic"
}

func fileTemplate(lower string) string {
	switch {
	case strings.Contains(lower, "email"):
		return "email"
	case strings.Contains(lower, "markdown") || strings.Contains(lower, "notes") || strings.Contains(lower, "documentation"):
		return "markdown"
	default:
		return "basic"
	}
}

func pathAfterIn(original, folded string) string {
	idx := strings.Index(folded, " in ")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(original[idx+len(" in "):])
	return strings.Trim(rest, `.,!?"'`)
}

func reminderText(original, folded string) string {
	for _, marker := range []string{" reminder for ", " reminder to ", " remind me to ", " remind me about "} {
		idx := strings.Index(folded, marker)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(original[idx+len(marker):])
		if rest != "" {
			return rest
		}
	}
	return original
}

func reminderWhen(lower string) string {
	for _, w := range []string{"tomorrow", "tonight", "this evening", "next week"} {
		if strings.Contains(lower, w) {
			return w
		}
	}
	if idx := strings.Index(lower, " in "); idx >= 0 {
		return strings.TrimSpace(lower[idx+1:])
	}
	return ""
}
