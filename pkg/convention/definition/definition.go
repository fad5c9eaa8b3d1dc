package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNoFunctionName = errors.New("function definition has no FunctionName")

type Environment struct {
	Variables map[string]string `json:"Variables,omitempty" yaml:"Variables,omitempty"`
}

type DeadLetterConfig struct {
	TargetArn *string `json:"TargetArn,omitempty" yaml:"TargetArn,omitempty"`
}

type VpcConfig struct {
	SubnetIds        []string `json:"SubnetIds" yaml:"SubnetIds"`
	SecurityGroupIds []string `json:"SecurityGroupIds" yaml:"SecurityGroupIds"`
}

type EphemeralStorage struct {
	Size *int32 `json:"Size,omitempty" yaml:"Size,omitempty"`
}

type TracingConfig struct {
	Mode string `json:"Mode,omitempty" yaml:"Mode,omitempty"`
}

// Definition is the provider-facing description of a function, as read from function.json.
type Definition struct {
	FunctionName     string            `json:"FunctionName" yaml:"FunctionName"`
	Description      *string           `json:"Description,omitempty" yaml:"Description,omitempty"`
	Handler          *string           `json:"Handler,omitempty" yaml:"Handler,omitempty"`
	Timeout          *int32            `json:"Timeout,omitempty" yaml:"Timeout,omitempty"`
	MemorySize       *int32            `json:"MemorySize,omitempty" yaml:"MemorySize,omitempty"`
	Runtime          string            `json:"Runtime,omitempty" yaml:"Runtime,omitempty"`
	Publish          bool              `json:"Publish,omitempty" yaml:"Publish,omitempty"`
	Role             string            `json:"Role,omitempty" yaml:"Role,omitempty"`
	KMSKeyArn        *string           `json:"KMSKeyArn,omitempty" yaml:"KMSKeyArn,omitempty"`
	Environment      *Environment      `json:"Environment,omitempty" yaml:"Environment,omitempty"`
	DeadLetterConfig *DeadLetterConfig `json:"DeadLetterConfig,omitempty" yaml:"DeadLetterConfig,omitempty"`
	VpcConfig        *VpcConfig        `json:"VpcConfig,omitempty" yaml:"VpcConfig,omitempty"`
	Tags             map[string]string `json:"Tags,omitempty" yaml:"Tags,omitempty"`
	Layers           []string          `json:"Layers,omitempty" yaml:"Layers,omitempty"`
	Architectures    []string          `json:"Architectures,omitempty" yaml:"Architectures,omitempty"`
	EphemeralStorage *EphemeralStorage `json:"EphemeralStorage,omitempty" yaml:"EphemeralStorage,omitempty"`
	TracingConfig    *TracingConfig    `json:"TracingConfig,omitempty" yaml:"TracingConfig,omitempty"`

	unknown []string
}

var knownKeys = map[string]bool{
	"FunctionName":     true,
	"Description":      true,
	"Handler":          true,
	"Timeout":          true,
	"MemorySize":       true,
	"Runtime":          true,
	"Publish":          true,
	"Role":             true,
	"KMSKeyArn":        true,
	"Environment":      true,
	"DeadLetterConfig": true,
	"VpcConfig":        true,
	"Tags":             true,
	"Layers":           true,
	"Architectures":    true,
	"EphemeralStorage": true,
	"TracingConfig":    true,
}

func Load(path string) (Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Decode(content, yaml.Unmarshal)
	default:
		return Decode(content, json.Unmarshal)
	}
}

// Decode reads a definition document with the given unmarshaller.
func Decode(content []byte, unmarshal func([]byte, any) error) (Definition, error) {
	var d Definition
	if err := unmarshal(content, &d); err != nil {
		return Definition{}, fmt.Errorf("failed to decode function definition: %w", err)
	}

	var raw map[string]any
	if err := unmarshal(content, &raw); err != nil {
		return Definition{}, fmt.Errorf("failed to decode function definition: %w", err)
	}

	for key := range raw {
		if !knownKeys[key] {
			d.unknown = append(d.unknown, key)
		}
	}
	sort.Strings(d.unknown)

	if d.FunctionName == "" {
		return Definition{}, ErrNoFunctionName
	}

	return d, nil
}

// Unknown lists top-level keys the definition carried that are not passed to the provider.
func (d Definition) Unknown() []string {
	return d.unknown
}
