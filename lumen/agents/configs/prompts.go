package configs

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"lumen/lumen/utils/logging"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// Prompts holds the model instructions used by the agents.
type Prompts struct {
	Decision       string `yaml:"decision"`
	Synthesis      string `yaml:"synthesis"`
	VisionQuestion string `yaml:"vision_question"`
}

// Default returns the embedded prompt set.
func Default() *Prompts {
	p, err := parse(defaultPrompts)
	if err != nil {
		// the embedded file is part of the build
		panic(fmt.Sprintf("embedded prompts.yaml: %v", err))
	}
	return p
}

// LoadPrompts starts from the embedded prompts and overlays any non-empty
// entries of the file at path. An empty path returns the defaults.
func LoadPrompts(path string) (*Prompts, error) {
	p := Default()
	if path == "" {
		return p, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	override, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse prompts file %s: %w", path, err)
	}
	if override.Decision != "" {
		p.Decision = override.Decision
	}
	if override.Synthesis != "" {
		p.Synthesis = override.Synthesis
	}
	if override.VisionQuestion != "" {
		p.VisionQuestion = override.VisionQuestion
	}
	logging.AppLogger.Info("prompts loaded", zap.String("path", path))
	return p, nil
}

func parse(raw []byte) (*Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	p.Decision = strings.TrimSpace(p.Decision)
	p.Synthesis = strings.TrimSpace(p.Synthesis)
	p.VisionQuestion = strings.TrimSpace(p.VisionQuestion)
	return &p, nil
}
