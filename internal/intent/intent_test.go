package intent

import "testing"

func TestInterpretTable(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Intent
	}{
		{
			name: "create python project",
			text: "Create a Python project called Demo",
			want: Intent{Kind: KindCreateProject, ProjectName: "Demo", ProjectKind: "python"},
		},
		{
			name: "create go project",
			text: "please make a new golang project named scanner",
			want: Intent{Kind: KindCreateProject, ProjectName: "scanner", ProjectKind: "go"},
		},
		{
			name: "set reminder",
			text: "set a reminder for tomorrow's meeting",
			want: Intent{Kind: KindSetReminder, ReminderText: "tomorrow's meeting", ReminderWhen: "tomorrow"},
		},
		{
			name: "remind me in minutes",
			text: "remind me to stretch in 10 minutes",
			want: Intent{Kind: KindSetReminder, ReminderText: "stretch in 10 minutes", ReminderWhen: "in 10 minutes"},
		},
		{
			name: "organize files",
			text: "organize the files in downloads",
			want: Intent{Kind: KindOrganizeFiles, Path: "downloads"},
		},
		{
			name: "analyze directory",
			text: "analyze the folder in projects",
			want: Intent{Kind: KindAnalyzeDirectory, Path: "projects"},
		},
		{
			name: "create markdown file",
			text: "create a markdown file called notes",
			want: Intent{Kind: KindCreateFile, FileName: "notes", Template: "markdown"},
		},
		{
			name: "dashboard",
			text: "show me the dashboard please",
			want: Intent{Kind: KindShowDashboard},
		},
		{
			name: "exit word",
			text: "okay goodbye",
			want: Intent{Kind: KindExit},
		},
		{
			name: "generic chat fallthrough",
			text: "what's the weather like on Catalina",
			want: Intent{Kind: KindGenericChat, Text: "what's the weather like on Catalina"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Interpret(tc.text)
			if got != tc.want {
				t.Fatalf("Interpret(%q) = %+v, want %+v", tc.text, got, tc.want)
			}
		})
	}
}

func TestInterpretMultibyteRunes(t *testing.T) {
	// Runes like U+023A grow when lowercased with strings.ToLower, so marker
	// offsets must come from a length-preserving fold or extraction misaligns.
	cases := []struct {
		name string
		text string
		want Intent
	}{
		{
			name: "leading multibyte rune keeps full name",
			text: "Ⱥ create a project called Demo",
			want: Intent{Kind: KindCreateProject, ProjectName: "Demo", ProjectKind: "generic"},
		},
		{
			name: "two growing runes with short name",
			text: "ȺȺ create a project called D",
			want: Intent{Kind: KindCreateProject, ProjectName: "D", ProjectKind: "generic"},
		},
		{
			name: "multibyte rune before path marker",
			text: "Ⱥ organize the files in downloads",
			want: Intent{Kind: KindOrganizeFiles, Path: "downloads"},
		},
		{
			name: "multibyte rune before reminder marker",
			text: "Ⱥ remind me to call Amélie tomorrow",
			want: Intent{Kind: KindSetReminder, ReminderText: "call Amélie tomorrow", ReminderWhen: "tomorrow"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Interpret(tc.text)
			if got != tc.want {
				t.Fatalf("Interpret(%q) = %+v, want %+v", tc.text, got, tc.want)
			}
		})
	}
}

func TestInterpretDeterministic(t *testing.T) {
	text := "create a python project called Demo and remind me later"
	first := Interpret(text)
	for i := 0; i < 50; i++ {
		if got := Interpret(text); got != first {
			t.Fatalf("Interpret() not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestExitDoesNotMatchInsideWords(t *testing.T) {
	got := Interpret("the exits on this building are quite hidden")
	if got.Kind == KindExit {
		t.Fatalf("exit phrase matched inside a longer word")
	}
}

func TestReminderBeatsProjectByOrder(t *testing.T) {
	// Both rule triggers appear; the reminder rule is declared first.
	got := Interpret("remind me to create a project tomorrow")
	if got.Kind != KindSetReminder {
		t.Fatalf("Kind = %q, want %q (declaration order breaks ties)", got.Kind, KindSetReminder)
	}
}
