// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Candidate is one board snapshot offered by the picker.
type Candidate struct {
	ID    string
	Seq   int
	Label string
}

// SelectPair lets the user pick two snapshots. The pair is returned oldest
// first; nil means the user quit.
func SelectPair(items []Candidate, opts ...tea.ProgramOption) []Candidate {
	p := tea.NewProgram(picker{items: items}, opts...)
	m, err := p.Run()
	if err != nil {
		log.Errorf("picker: %v", err)
		return nil
	}
	return m.(picker).pair()
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "diff")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
}

var (
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f6be00"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

type picker struct {
	items    []Candidate
	cursor   int
	selected []Candidate
	done     bool
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, keys.Quit):
		m.selected = nil
		return m, tea.Quit
	case key.Matches(k, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(k, keys.Toggle):
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if i := m.indexOf(item); i >= 0 {
			m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
		} else if len(m.selected) < 2 {
			m.selected = append(m.selected, item)
		}
	case key.Matches(k, keys.Confirm):
		if len(m.selected) == 2 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m picker) View() string {
	var sb strings.Builder
	sb.WriteString("Select two boards:\n\n")
	for i, c := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = cursorStyle.Render(">")
		}
		mark := " "
		if m.indexOf(c) >= 0 {
			mark = selectedStyle.Render("x")
		}
		fmt.Fprintf(&sb, "%s [%s] %4d %s\n", cursor, mark, c.Seq, c.Label)
	}

	help := []string{}
	for _, b := range []key.Binding{keys.Up, keys.Down, keys.Toggle, keys.Confirm, keys.Quit} {
		h := b.Help()
		help = append(help, h.Key+": "+h.Desc)
	}
	sb.WriteString("\n" + helpStyle.Render(strings.Join(help, ", ")) + "\n")
	return sb.String()
}

func (m picker) indexOf(c Candidate) int {
	for i, s := range m.selected {
		if s.ID == c.ID {
			return i
		}
	}
	return -1
}

func (m picker) pair() []Candidate {
	if !m.done || len(m.selected) != 2 {
		return nil
	}
	pair := append([]Candidate(nil), m.selected...)
	sort.Slice(pair, func(i, j int) bool { return pair[i].Seq < pair[j].Seq })
	return pair
}
