package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/alexanderramin/officeflow/internal/domain"
)

// LoadFile reads and validates a single JSON template definition.
func LoadFile(path string) (*domain.WorkflowTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a JSON template definition and validates it.
func Parse(data []byte) (*domain.WorkflowTemplate, error) {
	var tpl domain.WorkflowTemplate
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	if err := Validate(&tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// LoadResult holds the templates found in a directory along with the files
// that could not be loaded.
type LoadResult struct {
	Templates []*domain.WorkflowTemplate
	Skipped   map[string]error
}

// LoadDir loads every *.json file in dir, in file name order. Invalid files
// are reported in Skipped instead of failing the whole load.
func LoadDir(dir string) (*LoadResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	res := &LoadResult{Skipped: map[string]error{}}
	for _, file := range files {
		tpl, err := LoadFile(file)
		if err != nil {
			res.Skipped[file] = err
			continue
		}
		res.Templates = append(res.Templates, tpl)
	}
	return res, nil
}
