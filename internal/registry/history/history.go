package history

import (
	"sort"
	"strings"
	"time"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/format"
)

// Entry is one build step of an image. SizeBytes is -1 for steps that did
// not produce a layer.
type Entry struct {
	CreatedAt  time.Time
	CreatedBy  string
	Command    string
	Comment    string
	SizeBytes  int64
	EmptyLayer bool
}

type Layer struct {
	Index     int
	Digest    string
	MediaType string
	SizeBytes int64
}

// Build lists the build steps of info newest first, pairing manifest layer
// sizes with the history entries that produced a layer.
func Build(info api.ImageInfo) []Entry {
	steps := info.Config.History
	if len(steps) == 0 {
		return nil
	}

	layerSizes := make([]int64, 0, len(info.Manifest.Layers))
	for _, layer := range info.Manifest.Layers {
		layerSizes = append(layerSizes, layer.Size)
	}

	layerIndex := 0
	entries := make([]Entry, 0, len(steps))
	for _, step := range steps {
		createdBy := strings.TrimSpace(step.CreatedBy)
		h := Entry{
			CreatedAt:  parseDockerTime(step.Created),
			CreatedBy:  createdBy,
			Command:    format.DockerCommand(createdBy),
			Comment:    strings.TrimSpace(step.Comment),
			SizeBytes:  -1,
			EmptyLayer: step.EmptyLayer,
		}
		if !step.EmptyLayer && layerIndex < len(layerSizes) {
			h.SizeBytes = layerSizes[layerIndex]
			layerIndex++
		}
		entries = append(entries, h)
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// Layers lists the manifest layers in push order, numbered from one.
func Layers(info api.ImageInfo) []Layer {
	layers := make([]Layer, 0, len(info.Manifest.Layers))
	for i, layer := range info.Manifest.Layers {
		layers = append(layers, Layer{
			Index:     i + 1,
			Digest:    layer.Digest,
			MediaType: layer.MediaType,
			SizeBytes: layer.Size,
		})
	}
	return layers
}

// ConfigField is one runtime setting of an image. Env entries and labels
// produce one field each.
type ConfigField struct {
	Name  string
	Value string
}

// RuntimeConfig lists the container settings baked into info: entrypoint,
// command, working directory, user and exposed ports, then the environment in
// image order and the labels sorted by key.
func RuntimeConfig(info api.ImageInfo) []ConfigField {
	cfg := info.Config.Config
	ports := make([]string, 0, len(cfg.ExposedPorts))
	for port := range cfg.ExposedPorts {
		ports = append(ports, port)
	}
	sort.Strings(ports)

	fields := []ConfigField{
		{Name: "Entrypoint", Value: joinOr(cfg.Entrypoint, " ")},
		{Name: "Cmd", Value: joinOr(cfg.Cmd, " ")},
		{Name: "WorkingDir", Value: format.FirstNonEmpty(cfg.WorkingDir, format.Placeholder)},
		{Name: "User", Value: format.FirstNonEmpty(cfg.User, format.Placeholder)},
		{Name: "ExposedPorts", Value: joinOr(ports, ", ")},
	}
	for _, env := range cfg.Env {
		fields = append(fields, ConfigField{Name: "Env", Value: env})
	}
	keys := make([]string, 0, len(cfg.Labels))
	for key := range cfg.Labels {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fields = append(fields, ConfigField{Name: "Label", Value: key + "=" + cfg.Labels[key]})
	}
	return fields
}

func joinOr(values []string, sep string) string {
	return format.FirstNonEmpty(strings.Join(values, sep), format.Placeholder)
}

// TotalSize prefers the size reported with the image and falls back to the
// sum of its layers.
func TotalSize(info api.ImageInfo) int64 {
	if info.TotalSize > 0 {
		return info.TotalSize
	}
	if info.Manifest.TotalSize > 0 {
		return info.Manifest.TotalSize
	}
	var total int64
	for _, layer := range info.Manifest.Layers {
		total += layer.Size
	}
	return total
}

func parseDockerTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed
	}
	return time.Time{}
}
