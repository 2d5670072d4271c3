package chat

import "strings"

// rule pairs a keyword set with the tool it selects. Rules are checked in
// order; the first keyword hit wins.
type rule struct {
	keywords []string
	tool     string
}

var rules = []rule{
	{keywords: []string{"add", "create", "new"}, tool: "add_task"},
	{keywords: []string{"list", "show", "view"}, tool: "list_tasks"},
	{keywords: []string{"complete", "done", "finish"}, tool: "complete_task"},
	{keywords: []string{"delete", "remove"}, tool: "delete_task"},
	{keywords: []string{"update", "change", "modify"}, tool: "update_task"},
}

// MatchTool classifies free text into a tool name. Matching is
// case-insensitive substring membership over the whole message.
func MatchTool(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.tool, true
			}
		}
	}
	return "", false
}
