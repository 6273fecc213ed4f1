package store

import (
	"encoding/json"
	"fmt"
)

// marshalRuleFiles converts the rule file list to JSON TEXT for storage.
// A nil list is stored as the empty array so reads never see NULL.
func marshalRuleFiles(files []string) (string, error) {
	if files == nil {
		files = []string{}
	}
	data, err := json.Marshal(files)
	if err != nil {
		return "", fmt.Errorf("marshal rule files: %w", err)
	}
	return string(data), nil
}

// unmarshalRuleFiles parses the stored rule file list.
func unmarshalRuleFiles(data string) ([]string, error) {
	var files []string
	if err := json.Unmarshal([]byte(data), &files); err != nil {
		return nil, fmt.Errorf("unmarshal rule files: %w", err)
	}
	return files, nil
}
