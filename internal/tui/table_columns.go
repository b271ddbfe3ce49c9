package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

func makeColumns(focus Focus, view detailView, width int) []table.Column {
	contentWidth := func(columnCount int) int {
		if columnCount <= 0 {
			return maxInt(1, width)
		}
		// Cells are padded by one on each side.
		available := width - (2 * columnCount)
		if available < columnCount {
			return columnCount
		}
		return available
	}

	timeWidth := 19
	countWidth := 6
	sizeWidth := 12
	sampleWidth := 28

	switch focus {
	case FocusTags:
		content := contentWidth(2)
		tagWidth := maxInt(1, content/3)
		return []table.Column{
			{Title: "Tag", Width: tagWidth},
			{Title: "Reference", Width: maxInt(1, content-tagWidth)},
		}
	case FocusDetail:
		switch view {
		case detailViewLayers:
			indexWidth := 3
			digestWidth := 22
			content := contentWidth(4)
			return []table.Column{
				{Title: "#", Width: indexWidth},
				{Title: "Digest", Width: digestWidth},
				{Title: "Media type", Width: maxInt(1, content-indexWidth-digestWidth-sizeWidth)},
				{Title: "Size", Width: sizeWidth},
			}
		case detailViewConfig:
			nameWidth := 12
			content := contentWidth(2)
			return []table.Column{
				{Title: "Setting", Width: nameWidth},
				{Title: "Value", Width: maxInt(1, content-nameWidth)},
			}
		}
		content := contentWidth(3)
		return []table.Column{
			{Title: "Command", Width: maxInt(1, content-timeWidth-sizeWidth)},
			{Title: "Created", Width: timeWidth},
			{Title: "Size", Width: sizeWidth},
		}
	case FocusRegistries:
		markWidth := 1
		idWidth := 4
		nameWidth := 16
		userWidth := 12
		defaultWidth := 7
		content := contentWidth(6)
		fixed := markWidth + idWidth + nameWidth + userWidth + defaultWidth
		return []table.Column{
			{Title: "", Width: markWidth},
			{Title: "ID", Width: idWidth},
			{Title: "Name", Width: nameWidth},
			{Title: "URL", Width: maxInt(1, content-fixed)},
			{Title: "User", Width: userWidth},
			{Title: "Default", Width: defaultWidth},
		}
	default:
		content := contentWidth(3)
		return []table.Column{
			{Title: "Name", Width: maxInt(1, content-countWidth-sampleWidth)},
			{Title: "Tags", Width: countWidth},
			{Title: "Latest tags", Width: sampleWidth},
		}
	}
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Foreground(colorTitleText).
		Background(colorSurface2).
		Bold(true)
	styles.Cell = lipgloss.NewStyle().Padding(0, 1)
	styles.Selected = styles.Selected.
		Foreground(colorSelected).
		Background(colorAccent).
		Bold(true)
	return styles
}
