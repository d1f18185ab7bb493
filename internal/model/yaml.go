package model

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DescriptorDocument is the YAML exchange format for controller descriptors.
// It lets another parser feed the generator, and -dump writes it for debugging.
type DescriptorDocument struct {
	Controllers []Controller `yaml:"controllers"`
}

// LoadDescriptors reads controller descriptors from a YAML file
func LoadDescriptors(path string) ([]Controller, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptors: %w", err)
	}
	return ParseDescriptors(data)
}

// ParseDescriptors decodes a descriptor document.
// Unknown fields are rejected so that typos do not silently drop data.
func ParseDescriptors(data []byte) ([]Controller, error) {
	var doc DescriptorDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode descriptors: %w", err)
	}

	for i, c := range doc.Controllers {
		if c.Name == "" {
			return nil, fmt.Errorf("controllers[%d]: name is required", i)
		}
		for j, m := range c.Methods {
			if m.Name == "" {
				return nil, fmt.Errorf("controllers[%d].methods[%d]: name is required", i, j)
			}
		}
	}
	return doc.Controllers, nil
}

// WriteDescriptors writes controller descriptors as a YAML document
func WriteDescriptors(path string, controllers []Controller) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(DescriptorDocument{Controllers: controllers}); err != nil {
		return fmt.Errorf("failed to encode descriptors: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode descriptors: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write descriptors: %w", err)
	}
	return nil
}
