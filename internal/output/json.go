// Package output writes extraction results to files for downstream stages.
package output

import (
	"encoding/json"
	"os"

	"github.com/Ali-Choubdaran/corporate-news-extraction/pkg/models"
)

// SaveJSON writes an indented JSON export of the record to filepath. Block
// inner HTML is stripped first: downstream consumers read the text and table
// fields, and the markup only bloats the export.
func SaveJSON(record *models.ArticleRecord, filepath string) error {
	exportRecord := *record
	exportRecord.Body = make([]models.ContentBlock, len(record.Body))
	for i, block := range record.Body {
		block.HTML = ""
		exportRecord.Body[i] = block
	}

	content, err := json.MarshalIndent(exportRecord, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, content, 0644)
}

type urlList struct {
	Status string   `json:"status"`
	URLs   []string `json:"urls"`
}

// SaveURLList writes discovered article URLs with their run status as JSON.
func SaveURLList(urls []string, status string, filepath string) error {
	content, err := json.MarshalIndent(urlList{Status: status, URLs: urls}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, content, 0644)
}

// LoadURLList reads a file written by SaveURLList back into a URL slice.
func LoadURLList(filepath string) ([]string, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	var list urlList
	if err := json.Unmarshal(content, &list); err != nil {
		return nil, err
	}
	return list.URLs, nil
}
