package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Focus   key.Binding
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Open    key.Binding
	Submit  key.Binding
	Cancel  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "foco")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "subir")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "bajar")),
		Top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "inicio")),
		Bottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "final")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "escribir semana")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "confirmar")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancelar")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "actualizar")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Focus, k.Refresh, k.Quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Focus}
}
