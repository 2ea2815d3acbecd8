package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

//go:embed standard.json
var standardJSON []byte

var schema = func() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("dataset.schema.json", strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("dataset schema: %v", err))
	}
	return c.MustCompile("dataset.schema.json")
}()

// Parse validates raw JSON against the dataset schema and decodes it.
func Parse(raw []byte) (*Dataset, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate dataset: %w", err)
	}

	var d Dataset
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	d.raw = raw
	d.normalize()
	return &d, nil
}

// Load reads and parses one dataset file.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	d, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return d, nil
}

// LoadDir parses every *.json file in dir. A missing directory is not
// an error; it just yields no datasets.
func LoadDir(dir string) ([]*Dataset, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan dataset dir: %w", err)
	}

	var datasets []*Dataset
	for _, path := range paths {
		d, err := Load(path)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}
	return datasets, nil
}

var (
	defaultOnce sync.Once
	defaultSet  *Dataset
)

// Default returns the embedded standard dataset.
func Default() *Dataset {
	defaultOnce.Do(func() {
		d, err := Parse(standardJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded standard dataset: %v", err))
		}
		defaultSet = d
	})
	return defaultSet
}
