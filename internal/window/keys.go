package window

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meaty/meatymidi/internal/render"
)

// Action names what a key does.
type Action string

const actionClose Action = "close"

// Binding ties keys to an action.
type Binding struct {
	Action Action
	Keys   []string
	Help   string
}

// KeyRegistry resolves key names to actions. The first registration of a key
// wins.
type KeyRegistry struct {
	bindings []*Binding
	index    map[string]*Binding
}

// NewKeyRegistry returns the default bindings: q, esc and ctrl+c close the
// window.
func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{index: make(map[string]*Binding)}
	r.Register(Binding{Action: actionClose, Keys: []string{"q", "esc", "ctrl+c"}, Help: "close"})
	return r
}

// Register adds b. Keys already bound are skipped.
func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	keys := make([]string, 0, len(b.Keys))
	for _, k := range normalizeKeyList(b.Keys) {
		if _, taken := r.index[k]; !taken {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return
	}
	copyBinding := b
	copyBinding.Keys = keys
	r.bindings = append(r.bindings, &copyBinding)
	for _, k := range keys {
		r.index[k] = &copyBinding
	}
}

// Lookup returns the binding for keyName, or nil.
func (r *KeyRegistry) Lookup(keyName string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	return r.index[normalizeKeyName(keyName)]
}

// Is reports whether msg triggers action.
func (r *KeyRegistry) Is(action Action, msg tea.KeyMsg) bool {
	b := r.Lookup(msg.String())
	return b != nil && b.Action == action
}

// HelpBindings returns the bindings in registration order for the help
// footer.
func (r *KeyRegistry) HelpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(strings.Join(b.Keys, "/"), b.Help)))
	}
	return out
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Q and q are different keys.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "escape", "esc")
	return s
}

var (
	helpKeyStyle  = lipgloss.NewStyle().Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(render.ColorGrey)
)

// renderHelp formats bindings as one line: "q/esc/ctrl+c close".
func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, helpKeyStyle.Render(help.Key)+" "+helpDescStyle.Render(help.Desc))
	}
	return strings.Join(parts, "  ")
}
