package tui

import "github.com/charmbracelet/bubbles/key"

// selectKeys are active on the selection screen.
type selectKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Start  key.Binding
	Quit   key.Binding
}

func (k selectKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Start, k.Quit}
}

func (k selectKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// compareKeys are active while pairs remain.
type compareKeys struct {
	Left  key.Binding
	Tie   key.Binding
	Right key.Binding
	Back  key.Binding
	Quit  key.Binding
}

func (k compareKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Tie, k.Right, k.Back, k.Quit}
}

func (k compareKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// resultKeys are active on the final ranking.
type resultKeys struct {
	Save    key.Binding
	Back    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func (k resultKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Back, k.Restart, k.Quit}
}

func (k resultKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var keys = struct { //nolint:gochecknoglobals // immutable key map
	Select  selectKeys
	Compare compareKeys
	Results resultKeys
}{
	Select: selectKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Start:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	},
	Compare: compareKeys{
		Left:  key.NewBinding(key.WithKeys("left", "h", "1"), key.WithHelp("←/h/1", "left")),
		Tie:   key.NewBinding(key.WithKeys("down", "t", "2"), key.WithHelp("↓/t/2", "tie")),
		Right: key.NewBinding(key.WithKeys("right", "l", "3"), key.WithHelp("→/l/3", "right")),
		Back:  key.NewBinding(key.WithKeys("backspace", "b"), key.WithHelp("b", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	},
	Results: resultKeys{
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save csv")),
		Back:    key.NewBinding(key.WithKeys("backspace", "b"), key.WithHelp("b", "undo last")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "start over")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	},
}
