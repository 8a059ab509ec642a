package storage

import (
	"encoding/json"
	"fmt"
)

// Field is a single Elasticsearch field mapping.
type Field struct {
	Type     string `json:"type"`
	Analyzer string `json:"analyzer,omitempty"`
	Format   string `json:"format,omitempty"`
	Index    *bool  `json:"index,omitempty"`
}

// IndexSettings holds index-level settings shared by both indices.
type IndexSettings struct {
	NumberOfShards   int    `json:"number_of_shards"`
	NumberOfReplicas int    `json:"number_of_replicas"`
	RefreshInterval  string `json:"refresh_interval"`
}

// IndexMapping is a complete index definition: settings plus field mappings.
type IndexMapping struct {
	Settings IndexSettings `json:"settings"`
	Mappings struct {
		Properties map[string]Field `json:"properties"`
	} `json:"mappings"`
}

func defaultSettings() IndexSettings {
	return IndexSettings{
		NumberOfShards:   1,
		NumberOfReplicas: 1,
		RefreshInterval:  "5s",
	}
}

// contentFields are the fields shared by the content and analyzed indices.
func contentFields() map[string]Field {
	dateFormat := "strict_date_optional_time||epoch_millis"

	return map[string]Field{
		"id":         {Type: "keyword"},
		"project_id": {Type: "keyword"},
		"url":        {Type: "keyword"},

		"title": {Type: "text", Analyzer: "standard"},
		"body":  {Type: "text", Analyzer: "standard"},

		"keyword":            {Type: "keyword"},
		"industry":           {Type: "keyword"},
		"region":             {Type: "keyword"},
		"author_credentials": {Type: "text", Analyzer: "standard"},

		"word_count": {Type: "integer"},

		"analysis_status": {Type: "keyword"},
		"generated_at":    {Type: "date", Format: dateFormat},
		"analyzed_at":     {Type: "date", Format: dateFormat},
	}
}

// NewContentMapping returns the mapping for the pending-content index.
func NewContentMapping() *IndexMapping {
	m := &IndexMapping{Settings: defaultSettings()}
	m.Mappings.Properties = contentFields()
	return m
}

// NewAnalyzedContentMapping returns the mapping for the analyzed index:
// all content fields plus the analysis scores.
func NewAnalyzedContentMapping() *IndexMapping {
	m := NewContentMapping()

	for name, field := range map[string]Field{
		"phrase_score":        {Type: "integer"},
		"hallucination_score": {Type: "integer"},
		"eeat_score":          {Type: "integer"},
		"readability_score":   {Type: "integer"},
		"overall_score":       {Type: "integer"},
		"risk_level":          {Type: "keyword"},
		"confidence":          {Type: "float"},
		"analyzer_version":    {Type: "keyword"},
	} {
		m.Mappings.Properties[name] = field
	}

	return m
}

// JSON renders the mapping as the body for an index-create request.
func (m *IndexMapping) JSON() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal index mapping: %w", err)
	}
	return data, nil
}
