// Package config reads program layouts and demo settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"glkit/gfx"
)

// Layout is a gfx.ProgramLayout read from YAML. Both sections are mappings
// from name to GLSL type name; mapping order becomes layout order:
//
//	attributes:
//	  position: vec2
//	  id: int
//	uniforms:
//	  u_time: float
//	  u_tex: sampler2D
type Layout struct {
	gfx.ProgramLayout
}

// UnmarshalYAML implements yaml.Unmarshaler for Layout.
func (l *Layout) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: layout must be a mapping", value.Line)
	}
	var out gfx.ProgramLayout
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, body := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "attributes":
			err := eachEntry(body, func(name, typ string, line int) error {
				a, err := gfx.ParseAtype(typ)
				if err != nil {
					return fmt.Errorf("line %d: attribute %q: %w", line, name, err)
				}
				out.Attributes = append(out.Attributes, gfx.AttributeDesc{Name: name, Type: a})
				return nil
			})
			if err != nil {
				return err
			}
		case "uniforms":
			err := eachEntry(body, func(name, typ string, line int) error {
				u, err := gfx.ParseUtype(typ)
				if err != nil {
					return fmt.Errorf("line %d: uniform %q: %w", line, name, err)
				}
				out.Uniforms = append(out.Uniforms, gfx.UniformDesc{Name: name, Type: u})
				return nil
			})
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: unknown layout section %q", key.Line, key.Value)
		}
	}
	l.ProgramLayout = out
	return nil
}

// eachEntry calls fn for every name: type pair of a mapping node, in order.
func eachEntry(node *yaml.Node, fn func(name, typ string, line int) error) error {
	if node.ShortTag() == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of name: type", node.Line)
	}
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: type of %q must be a name", v.Line, k.Value)
		}
		if seen[k.Value] {
			return fmt.Errorf("line %d: duplicate name %q", k.Line, k.Value)
		}
		seen[k.Value] = true
		if err := fn(k.Value, v.Value, k.Line); err != nil {
			return err
		}
	}
	return nil
}

// ParseLayout decodes a YAML layout document.
func ParseLayout(data []byte) (gfx.ProgramLayout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return gfx.ProgramLayout{}, fmt.Errorf("parse layout: %w", err)
	}
	return l.ProgramLayout, nil
}

// Window holds the window settings of the demo.
type Window struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	VSync   *bool  `yaml:"vsync"` // pointer to distinguish unset vs false
	Samples int    `yaml:"samples"`
}

// Program names a combined shader source and its layout.
type Program struct {
	Shader  string `yaml:"shader"`
	Prelude string `yaml:"prelude"`
	Layout  Layout `yaml:"layout"`
}

// Demo is the configuration of cmd/demo.
type Demo struct {
	Window Window `yaml:"window"`

	// Scene is drawn into the multisampled offscreen target.
	Scene Program `yaml:"scene"`
	// Present samples the resolved target and draws it to the window.
	Present Program `yaml:"present"`

	// Texture is a URL or path loaded in the background and sampled by
	// the scene program. Empty means a generated checkerboard.
	Texture string `yaml:"texture"`
	Workers int    `yaml:"workers"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// LoadDemo reads a demo configuration. Shader paths are resolved relative
// to the directory of the file, and unset fields get their defaults.
func LoadDemo(path string) (*Demo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read demo config: %w", err)
	}
	var d Demo
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse demo config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, p := range []*Program{&d.Scene, &d.Present} {
		if p.Shader == "" {
			return nil, fmt.Errorf("demo config %s: missing shader path", path)
		}
		if !filepath.IsAbs(p.Shader) {
			p.Shader = filepath.Join(dir, p.Shader)
		}
	}

	if d.Window.Width == 0 {
		d.Window.Width = 1280
	}
	if d.Window.Height == 0 {
		d.Window.Height = 720
	}
	if d.Window.Title == "" {
		d.Window.Title = "glkit demo"
	}
	if d.Window.Samples == 0 {
		d.Window.Samples = 4
	}
	if d.Workers == 0 {
		d.Workers = 2
	}
	if d.LogLevel == "" {
		d.LogLevel = "info"
	}
	return &d, nil
}

// ReadShader returns the combined source of p.
func (p Program) ReadShader() (string, error) {
	src, err := os.ReadFile(p.Shader)
	if err != nil {
		return "", fmt.Errorf("read shader: %w", err)
	}
	return string(src), nil
}
