package chat

import "testing"

func TestMatchTool(t *testing.T) {
	cases := []struct {
		message string
		tool    string
		matched bool
	}{
		{"please add milk to my list", "add_task", true},
		{"create a reminder", "add_task", true},
		{"I need a new entry", "add_task", true},
		{"list everything", "list_tasks", true},
		{"show me what's pending", "list_tasks", true},
		{"view all", "list_tasks", true},
		{"I'm done with the report", "complete_task", true},
		{"finish the first one", "complete_task", true},
		{"mark it complete", "complete_task", true},
		{"delete the second one", "delete_task", true},
		{"remove that", "delete_task", true},
		{"update the title", "update_task", true},
		{"change it please", "update_task", true},
		{"modify the description", "update_task", true},
		{"hello there", "", false},
		{"what can you do?", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			tool, matched := MatchTool(tc.message)
			if matched != tc.matched || tool != tc.tool {
				t.Errorf("MatchTool(%q) = (%q, %t), want (%q, %t)", tc.message, tool, matched, tc.tool, tc.matched)
			}
		})
	}
}

func TestMatchToolFirstRuleWins(t *testing.T) {
	// "create" and "delete" both appear; the add rule is checked first.
	tool, matched := MatchTool("create one then delete it")
	if !matched || tool != "add_task" {
		t.Errorf("got (%q, %t), want (add_task, true)", tool, matched)
	}
}

func TestMatchToolCaseInsensitive(t *testing.T) {
	tool, matched := MatchTool("ADD SOMETHING")
	if !matched || tool != "add_task" {
		t.Errorf("got (%q, %t), want (add_task, true)", tool, matched)
	}
}
