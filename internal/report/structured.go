package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// jsonWriter collects rows and emits one indented JSON array on Close, so
// the output is a single valid document rather than concatenated objects.
type jsonWriter[T any] struct {
	w    io.Writer
	rows []T
}

func (j *jsonWriter[T]) Write(row T) error {
	j.rows = append(j.rows, row)
	return nil
}

func (j *jsonWriter[T]) Close() error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(j.rows)
}

// yamlWriter collects rows and emits one YAML sequence on Close.
type yamlWriter[T any] struct {
	w    io.Writer
	rows []T
}

func (y *yamlWriter[T]) Write(row T) error {
	y.rows = append(y.rows, row)
	return nil
}

func (y *yamlWriter[T]) Close() error {
	enc := yaml.NewEncoder(y.w)
	defer enc.Close()
	return enc.Encode(y.rows)
}
