package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/format"
	"github.com/scottbass3/dgui/internal/registry"
	"github.com/scottbass3/dgui/internal/registry/history"
)

const maxSampleTags = 3

func (m Model) tableRows() [][]string {
	switch m.focus {
	case FocusTags:
		var registryURL string
		if active, ok := m.app.Selection.Active(); ok {
			registryURL = active.URL
		}
		return tagRows(m.app.Nav.Location().Repository, m.tags.Data.Tags, registryURL)
	case FocusDetail:
		if !m.hasInfo {
			return nil
		}
		switch m.detailView {
		case detailViewLayers:
			return layerRows(history.Layers(m.info))
		case detailViewConfig:
			return configRows(history.RuntimeConfig(m.info))
		default:
			return historyRows(m.history)
		}
	case FocusRegistries:
		return registryRows(m.registries)
	default:
		return repositoryRows(m.repositories.Data)
	}
}

func repositoryRows(repos []api.RepositoryInfo) [][]string {
	if len(repos) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(repos))
	for _, repo := range repos {
		sample := repo.Tags
		if len(sample) > maxSampleTags {
			sample = sample[:maxSampleTags]
		}
		rows = append(rows, []string{
			repo.Name,
			format.Count(repo.TagCount),
			format.FirstNonEmpty(strings.Join(sample, ", "), format.Placeholder),
		})
	}
	return rows
}

func tagRows(repository string, tags []string, registryURL string) [][]string {
	if len(tags) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, []string{
			tag,
			registry.PullReference(registryURL, repository, tag),
		})
	}
	return rows
}

func historyRows(entries []history.Entry) [][]string {
	if len(entries) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			format.FirstNonEmpty(entry.Command, format.Placeholder),
			format.Time(entry.CreatedAt),
			format.Bytes(entry.SizeBytes),
		})
	}
	return rows
}

func layerRows(layers []history.Layer) [][]string {
	if len(layers) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(layers))
	for _, layer := range layers {
		rows = append(rows, []string{
			strconv.Itoa(layer.Index),
			format.ShortenDigest(layer.Digest),
			format.FirstNonEmpty(layer.MediaType, format.Placeholder),
			format.Bytes(layer.SizeBytes),
		})
	}
	return rows
}

func configRows(fields []history.ConfigField) [][]string {
	if len(fields) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, []string{field.Name, field.Value})
	}
	return rows
}

func registryRows(registries []api.Registry) [][]string {
	if len(registries) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(registries))
	for _, reg := range registries {
		mark := ""
		if reg.IsActive {
			mark = "*"
		}
		isDefault := ""
		if reg.IsDefault {
			isDefault = "yes"
		}
		rows = append(rows, []string{
			mark,
			strconv.FormatInt(reg.ID, 10),
			reg.Name,
			reg.URL,
			format.FirstNonEmpty(reg.Username, format.Placeholder),
			isDefault,
		})
	}
	return rows
}

func toTableRows(rows [][]string) []table.Row {
	if len(rows) == 0 {
		return nil
	}
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, table.Row(row))
	}
	return out
}

func normalizeTableRows(rows []table.Row, columnCount int) []table.Row {
	if len(rows) == 0 || columnCount <= 0 {
		return rows
	}
	for i, row := range rows {
		if len(row) == columnCount {
			continue
		}
		if len(row) > columnCount {
			rows[i] = row[:columnCount]
			continue
		}
		padded := make(table.Row, columnCount)
		copy(padded, row)
		rows[i] = padded
	}
	return rows
}
