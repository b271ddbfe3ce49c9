package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type shortcutAction int

const (
	shortcutOpenHelp shortcutAction = iota
	shortcutQuit
	shortcutOpenCommand
	shortcutOpenSearch
	shortcutRefresh
	shortcutBack
	shortcutOpenRegistries

	shortcutOpenRepository
	shortcutOpenTag
	shortcutNextPage
	shortcutPrevPage
	shortcutCyclePageSize
	shortcutDeleteTag
	shortcutCopyPullCommand
	shortcutCopyLocation
	shortcutDockerPull
	shortcutNextDetailView

	shortcutActivateRegistry
	shortcutTestRegistry

	shortcutTypeCommand
	shortcutCommandAutocomplete
	shortcutCommandPrevSuggestion
	shortcutCommandNextSuggestion
	shortcutCommandCycleSuggestions
	shortcutCommandRun
	shortcutCommandCancel

	shortcutTypeSearch
	shortcutApplySearch
	shortcutClearSearch

	shortcutCloseHelp

	shortcutMoveUp
	shortcutMoveDown
	shortcutMovePageUp
	shortcutMovePageDown
	shortcutMoveHalfUp
	shortcutMoveHalfDown
	shortcutMoveTop
	shortcutMoveBottom
)

type shortcutDefinition struct {
	Keys        []string
	HelpKeys    string
	HintKeys    string
	Description string
	HintLabel   string
}

var shortcutDefinitions = map[shortcutAction]shortcutDefinition{
	shortcutOpenHelp: {
		Keys:        []string{"?", "f1"},
		HelpKeys:    "?/F1",
		HintKeys:    "?",
		Description: "Open help",
		HintLabel:   "help",
	},
	shortcutQuit: {
		Keys:        []string{"q", "ctrl+c"},
		HelpKeys:    "q/Ctrl+C",
		HintKeys:    "q",
		Description: "Quit",
		HintLabel:   "quit",
	},
	shortcutOpenCommand: {
		Keys:        []string{":"},
		HelpKeys:    ":",
		HintKeys:    ":",
		Description: "Open command input",
		HintLabel:   "command",
	},
	shortcutOpenSearch: {
		Keys:        []string{"/"},
		HelpKeys:    "/",
		HintKeys:    "/",
		Description: "Search current listing",
		HintLabel:   "search",
	},
	shortcutRefresh: {
		Keys:        []string{"r"},
		HelpKeys:    "r",
		HintKeys:    "r",
		Description: "Refresh current data",
		HintLabel:   "refresh",
	},
	shortcutBack: {
		Keys:        []string{"esc"},
		HelpKeys:    "Esc",
		HintKeys:    "esc",
		Description: "Go back one level",
		HintLabel:   "back",
	},
	shortcutOpenRegistries: {
		Keys:        []string{"R"},
		HelpKeys:    "R",
		HintKeys:    "R",
		Description: "Open registries",
		HintLabel:   "registries",
	},
	shortcutOpenRepository: {
		Keys:        []string{"enter"},
		HelpKeys:    "Enter",
		HintKeys:    "enter",
		Description: "Open selected repository tags",
		HintLabel:   "open",
	},
	shortcutOpenTag: {
		Keys:        []string{"enter"},
		HelpKeys:    "Enter",
		HintKeys:    "enter",
		Description: "Open selected tag details",
		HintLabel:   "open",
	},
	shortcutNextPage: {
		Keys:        []string{"]", "right"},
		HelpKeys:    "]/Right",
		HintKeys:    "]",
		Description: "Next page",
		HintLabel:   "next",
	},
	shortcutPrevPage: {
		Keys:        []string{"[", "left"},
		HelpKeys:    "[/Left",
		HintKeys:    "[",
		Description: "Previous page",
		HintLabel:   "prev",
	},
	shortcutCyclePageSize: {
		Keys:        []string{"s"},
		HelpKeys:    "s",
		HintKeys:    "s",
		Description: "Cycle page size",
		HintLabel:   "size",
	},
	shortcutDeleteTag: {
		Keys:        []string{"x", "delete"},
		HelpKeys:    "x/Del",
		HintKeys:    "x",
		Description: "Delete selected tag",
		HintLabel:   "delete",
	},
	shortcutCopyPullCommand: {
		Keys:        []string{"c"},
		HelpKeys:    "c",
		HintKeys:    "c",
		Description: "Copy pull command",
		HintLabel:   "copy",
	},
	shortcutCopyLocation: {
		Keys:        []string{"y"},
		HelpKeys:    "y",
		HintKeys:    "y",
		Description: "Copy current location",
		HintLabel:   "location",
	},
	shortcutDockerPull: {
		Keys:        []string{"p"},
		HelpKeys:    "p",
		HintKeys:    "p",
		Description: "Pull selected tag with docker",
		HintLabel:   "pull",
	},
	shortcutNextDetailView: {
		Keys:        []string{"tab", "v"},
		HelpKeys:    "Tab/v",
		HintKeys:    "tab",
		Description: "Cycle detail view",
		HintLabel:   "view",
	},
	shortcutActivateRegistry: {
		Keys:        []string{"enter", "a"},
		HelpKeys:    "Enter/a",
		HintKeys:    "enter",
		Description: "Activate selected registry",
		HintLabel:   "activate",
	},
	shortcutTestRegistry: {
		Keys:        []string{"t"},
		HelpKeys:    "t",
		HintKeys:    "t",
		Description: "Test registry connection",
		HintLabel:   "test",
	},
	shortcutTypeCommand: {
		HelpKeys:    "Type",
		HintKeys:    "type",
		Description: "Set command text",
		HintLabel:   "command",
	},
	shortcutCommandAutocomplete: {
		Keys:        []string{"tab"},
		HelpKeys:    "Tab",
		HintKeys:    "tab",
		Description: "Autocomplete command",
		HintLabel:   "complete",
	},
	shortcutCommandPrevSuggestion: {
		Keys: []string{"up"},
	},
	shortcutCommandNextSuggestion: {
		Keys: []string{"down"},
	},
	shortcutCommandCycleSuggestions: {
		HelpKeys:    "Up/Down",
		HintKeys:    "up/down",
		Description: "Cycle command suggestions",
		HintLabel:   "cycle",
	},
	shortcutCommandRun: {
		Keys:        []string{"enter"},
		HelpKeys:    "Enter",
		HintKeys:    "enter",
		Description: "Run command",
		HintLabel:   "run",
	},
	shortcutCommandCancel: {
		Keys:        []string{"esc"},
		HelpKeys:    "Esc",
		HintKeys:    "esc",
		Description: "Close command input",
		HintLabel:   "cancel",
	},
	shortcutTypeSearch: {
		HelpKeys:    "Type",
		HintKeys:    "type",
		Description: "Set search text",
		HintLabel:   "text",
	},
	shortcutApplySearch: {
		Keys:        []string{"enter"},
		HelpKeys:    "Enter",
		HintKeys:    "enter",
		Description: "Apply search",
		HintLabel:   "apply",
	},
	shortcutClearSearch: {
		Keys:        []string{"esc"},
		HelpKeys:    "Esc",
		HintKeys:    "esc",
		Description: "Clear search",
		HintLabel:   "clear",
	},
	shortcutCloseHelp: {
		Keys:        []string{"esc", "?", "f1", "enter"},
		HelpKeys:    "Esc/?/F1/Enter",
		HintKeys:    "esc/?",
		Description: "Close help",
		HintLabel:   "close",
	},
	shortcutMoveUp: {
		Keys:        []string{"up", "k"},
		HelpKeys:    "Up/k",
		Description: "Move selection up",
	},
	shortcutMoveDown: {
		Keys:        []string{"down", "j"},
		HelpKeys:    "Down/j",
		Description: "Move selection down",
	},
	shortcutMovePageUp: {
		Keys:        []string{"pgup", "b"},
		HelpKeys:    "PgUp/b",
		Description: "Scroll one screen up",
	},
	shortcutMovePageDown: {
		Keys:        []string{"pgdown", "f", " "},
		HelpKeys:    "PgDn/f/Space",
		Description: "Scroll one screen down",
	},
	shortcutMoveHalfUp: {
		Keys:        []string{"ctrl+u", "u"},
		HelpKeys:    "Ctrl+U/u",
		Description: "Move half screen up",
	},
	shortcutMoveHalfDown: {
		Keys:        []string{"ctrl+d", "d"},
		HelpKeys:    "Ctrl+D/d",
		Description: "Move half screen down",
	},
	shortcutMoveTop: {
		Keys:        []string{"home", "g"},
		HelpKeys:    "Home/g",
		Description: "Jump to top",
	},
	shortcutMoveBottom: {
		Keys:        []string{"end", "G"},
		HelpKeys:    "End/G",
		Description: "Jump to bottom",
	},
}

type shortcutPage int

const (
	shortcutPageHelp shortcutPage = iota
	shortcutPageCommandInput
	shortcutPageSearchInput
	shortcutPageRepositories
	shortcutPageTags
	shortcutPageDetail
	shortcutPageRegistries
)

var listHelpActions = []shortcutAction{
	shortcutOpenHelp,
	shortcutOpenCommand,
	shortcutQuit,
	shortcutMoveUp,
	shortcutMoveDown,
	shortcutMovePageUp,
	shortcutMovePageDown,
	shortcutMoveHalfUp,
	shortcutMoveHalfDown,
	shortcutMoveTop,
	shortcutMoveBottom,
	shortcutRefresh,
	shortcutCopyLocation,
	shortcutOpenRegistries,
}

var pagedHelpActions = []shortcutAction{
	shortcutOpenSearch,
	shortcutNextPage,
	shortcutPrevPage,
	shortcutCyclePageSize,
}

var listHintActions = []shortcutAction{
	shortcutOpenHelp,
	shortcutOpenCommand,
	shortcutRefresh,
	shortcutQuit,
}

func isShortcut(msg tea.KeyMsg, action shortcutAction) bool {
	def, ok := shortcutDefinitions[action]
	if !ok || len(def.Keys) == 0 {
		return false
	}
	key := msg.String()
	for _, candidate := range def.Keys {
		if key == candidate {
			return true
		}
	}
	return false
}

func (m Model) shortcutPage(includeHelpOverlay bool) shortcutPage {
	if includeHelpOverlay && m.helpActive {
		return shortcutPageHelp
	}
	if m.commandActive {
		return shortcutPageCommandInput
	}
	if m.searchActive {
		return shortcutPageSearchInput
	}
	switch m.focus {
	case FocusTags:
		return shortcutPageTags
	case FocusDetail:
		return shortcutPageDetail
	case FocusRegistries:
		return shortcutPageRegistries
	default:
		return shortcutPageRepositories
	}
}

func (m Model) shortcutPageTitle(includeHelpOverlay bool) string {
	switch m.shortcutPage(includeHelpOverlay) {
	case shortcutPageHelp:
		return "Help"
	case shortcutPageCommandInput:
		return "Command Input"
	case shortcutPageSearchInput:
		return "Search Input"
	default:
		return focusLabel(m.focus)
	}
}

func (m Model) currentPageHelpEntries() []helpEntry {
	return helpEntriesForActions(m.helpActionsForPage(m.shortcutPage(false)))
}

func (m Model) shortcutHintLine() string {
	page := m.shortcutPage(true)
	return hintLineForActions(m.hintPrefixForPage(page), m.hintActionsForPage(page))
}

func (m Model) hintPrefixForPage(page shortcutPage) string {
	switch page {
	case shortcutPageHelp:
		return "Help"
	case shortcutPageCommandInput:
		return "Command"
	case shortcutPageSearchInput:
		return "Search"
	default:
		return "Shortcuts"
	}
}

func (m Model) helpActionsForPage(page shortcutPage) []shortcutAction {
	switch page {
	case shortcutPageCommandInput:
		return []shortcutAction{
			shortcutTypeCommand,
			shortcutCommandAutocomplete,
			shortcutCommandCycleSuggestions,
			shortcutCommandRun,
			shortcutCommandCancel,
			shortcutQuit,
		}
	case shortcutPageSearchInput:
		return []shortcutAction{
			shortcutTypeSearch,
			shortcutApplySearch,
			shortcutClearSearch,
			shortcutOpenCommand,
		}
	case shortcutPageRepositories:
		actions := append(cloneActions(listHelpActions), pagedHelpActions...)
		return append(actions, shortcutOpenRepository, shortcutBack)
	case shortcutPageTags:
		actions := append(cloneActions(listHelpActions), pagedHelpActions...)
		return append(actions,
			shortcutOpenTag,
			shortcutDeleteTag,
			shortcutCopyPullCommand,
			shortcutDockerPull,
			shortcutBack,
		)
	case shortcutPageDetail:
		actions := cloneActions(listHelpActions)
		return append(actions,
			shortcutNextDetailView,
			shortcutDeleteTag,
			shortcutCopyPullCommand,
			shortcutDockerPull,
			shortcutBack,
		)
	case shortcutPageRegistries:
		actions := cloneActions(listHelpActions)
		return append(actions, shortcutActivateRegistry, shortcutTestRegistry, shortcutBack)
	default:
		return []shortcutAction{shortcutCloseHelp, shortcutQuit}
	}
}

func (m Model) hintActionsForPage(page shortcutPage) []shortcutAction {
	switch page {
	case shortcutPageHelp:
		return []shortcutAction{shortcutCloseHelp, shortcutQuit}
	case shortcutPageCommandInput:
		return []shortcutAction{
			shortcutCommandAutocomplete,
			shortcutCommandCycleSuggestions,
			shortcutCommandRun,
			shortcutCommandCancel,
		}
	case shortcutPageSearchInput:
		return []shortcutAction{
			shortcutTypeSearch,
			shortcutApplySearch,
			shortcutClearSearch,
		}
	case shortcutPageRepositories:
		actions := cloneActions(listHintActions)
		return append(actions,
			shortcutOpenSearch,
			shortcutPrevPage,
			shortcutNextPage,
			shortcutCyclePageSize,
			shortcutOpenRepository,
			shortcutOpenRegistries,
		)
	case shortcutPageTags:
		actions := cloneActions(listHintActions)
		return append(actions,
			shortcutOpenSearch,
			shortcutPrevPage,
			shortcutNextPage,
			shortcutOpenTag,
			shortcutDeleteTag,
			shortcutCopyPullCommand,
			shortcutBack,
		)
	case shortcutPageDetail:
		actions := cloneActions(listHintActions)
		return append(actions, shortcutNextDetailView, shortcutDeleteTag, shortcutCopyPullCommand, shortcutDockerPull, shortcutBack)
	case shortcutPageRegistries:
		actions := cloneActions(listHintActions)
		return append(actions, shortcutActivateRegistry, shortcutTestRegistry, shortcutBack)
	default:
		return []shortcutAction{shortcutOpenHelp, shortcutQuit}
	}
}

func helpEntriesForActions(actions []shortcutAction) []helpEntry {
	entries := make([]helpEntry, 0, len(actions))
	for _, action := range actions {
		def, ok := shortcutDefinitions[action]
		if !ok || def.HelpKeys == "" || def.Description == "" {
			continue
		}
		entries = append(entries, helpEntry{Keys: def.HelpKeys, Action: def.Description})
	}
	return entries
}

func hintLineForActions(prefix string, actions []shortcutAction) string {
	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		def, ok := shortcutDefinitions[action]
		if !ok || def.HintLabel == "" {
			continue
		}
		keys := def.HintKeys
		if keys == "" {
			keys = def.HelpKeys
		}
		if keys == "" {
			continue
		}
		parts = append(parts, keys+" "+def.HintLabel)
	}
	if len(parts) == 0 {
		return prefix
	}
	if prefix == "" {
		return strings.Join(parts, "   ")
	}
	return prefix + ": " + strings.Join(parts, "   ")
}

func cloneActions(actions []shortcutAction) []shortcutAction {
	if len(actions) == 0 {
		return nil
	}
	out := make([]shortcutAction, len(actions))
	copy(out, actions)
	return out
}
