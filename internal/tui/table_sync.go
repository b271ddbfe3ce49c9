package tui

func (m *Model) syncTable() {
	rows := m.tableRows()
	width := m.width
	if width <= 0 {
		width = defaultRenderWidth
	}
	inputWidth := clampInt(width-10, 10, maxSearchWidth)
	m.searchInput.Width = inputWidth
	m.commandInput.Width = inputWidth

	tableWidth := maxInt(10, m.mainSectionContentWidth())
	columns := makeColumns(m.focus, m.detailView, tableWidth)
	tableRows := normalizeTableRows(toTableRows(rows), len(columns))
	columnsChanged := !equalTableColumns(m.tableColumns, columns)
	if columnsChanged {
		// bubbles/table panics when rows are longer than the column set.
		if len(m.table.Rows()) > 0 {
			m.table.SetRows(nil)
		}
		m.table.SetColumns(columns)
		m.tableColumns = append(m.tableColumns[:0], columns...)
	}

	if columnsChanged || !equalTableRows(m.table.Rows(), tableRows) {
		m.table.SetRows(tableRows)
	}

	height := m.tableHeight()
	if m.table.Height() != height {
		m.table.SetHeight(height)
	}
	if m.table.Width() != tableWidth {
		m.table.SetWidth(tableWidth)
	}
	m.table.SetStyles(tableStyles())
	// SetCursor on an empty table leaves the cursor at -1.
	cursor := m.table.Cursor()
	switch {
	case len(rows) == 0, cursor < 0:
		m.table.SetCursor(0)
	case cursor >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) tableHeight() int {
	if m.height <= 0 {
		return defaultTableHeight
	}
	topLines := lineCount(m.renderTopSection())
	sectionSeparators := 1
	debugLines := 0
	if m.debug {
		// Border, title and the fixed log window.
		debugLines = maxVisibleLogs + 3
		sectionSeparators++
	}
	bodyLines := lineCount(m.renderBodyHeader()) + lineCount(m.renderBodyFooter())
	available := m.height - topLines - mainSectionTitleLines - mainSectionBorderLines - debugLines - tableChromeLines - sectionSeparators - bodyLines
	if available < minTableHeight {
		return minTableHeight
	}
	return available
}

func focusLabel(focus Focus) string {
	switch focus {
	case FocusTags:
		return "Tags"
	case FocusDetail:
		return "Details"
	case FocusRegistries:
		return "Registries"
	default:
		return "Repositories"
	}
}
