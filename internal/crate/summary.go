package crate

// Summaries are the only shapes handed back to query callers; raw entities
// never leak into results. Each kind projects into a fixed struct with
// explicitly optional fields.

// FileSummary is the compact projection of a File entity.
type FileSummary struct {
	ID             string      `json:"id"`
	Name           string      `json:"name,omitempty"`
	SHA1           string      `json:"sha1,omitempty"`
	EncodingFormat string      `json:"encodingFormat,omitempty"`
	ExampleOfWork  interface{} `json:"exampleOfWork,omitempty"`
}

// DatasetSummary is the compact projection of a Dataset entity.
type DatasetSummary struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ParamSummary is the compact projection of a PropertyValue parameter.
type ParamSummary struct {
	ID            string      `json:"id"`
	Name          string      `json:"name,omitempty"`
	Value         string      `json:"value,omitempty"`
	ExampleOfWork interface{} `json:"exampleOfWork,omitempty"`
}

// ActionSummary is the compact projection of a CreateAction.
type ActionSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// ToolSummary is the compact projection of a SoftwareApplication. Inputs
// and outputs are the tool's declared reference lists, informational only.
type ToolSummary struct {
	ID      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	Types   []string `json:"type,omitempty"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

// OtherRef records an action input/output whose kind is outside the
// provenance vocabulary. Its presence is kept; nothing else is projected.
type OtherRef struct {
	ID    string   `json:"id"`
	Types []string `json:"type,omitempty"`
}

// SummarizeFile projects a File entity. encodingFormat falls back to the
// legacy fileFormat attribute.
func SummarizeFile(e *Entity) FileSummary {
	format := e.Str("encodingFormat")
	if format == "" {
		format = e.Str("fileFormat")
	}
	return FileSummary{
		ID:             e.ID,
		Name:           e.Str("alternateName"),
		SHA1:           e.Str("sha1"),
		EncodingFormat: format,
		ExampleOfWork:  e.Attrs["exampleOfWork"],
	}
}

// SummarizeDataset projects a Dataset entity.
func SummarizeDataset(e *Entity) DatasetSummary {
	return DatasetSummary{
		ID:   e.ID,
		Name: e.Str("alternateName"),
	}
}

// SummarizeParam projects a PropertyValue entity.
func SummarizeParam(e *Entity) ParamSummary {
	return ParamSummary{
		ID:            e.ID,
		Name:          e.Str("name"),
		Value:         e.Str("value"),
		ExampleOfWork: e.Attrs["exampleOfWork"],
	}
}

// SummarizeAction projects a CreateAction entity.
func SummarizeAction(e *Entity) ActionSummary {
	return ActionSummary{
		ID:        e.ID,
		Name:      e.Str("name"),
		StartTime: e.Str("startTime"),
		EndTime:   e.Str("endTime"),
	}
}

// SummarizeTool projects a SoftwareApplication entity, or nil when no tool
// reference resolved.
func SummarizeTool(e *Entity) *ToolSummary {
	if e == nil {
		return nil
	}
	return &ToolSummary{
		ID:      e.ID,
		Name:    e.Str("name"),
		Types:   e.Types,
		Inputs:  e.RefList("input"),
		Outputs: e.RefList("output"),
	}
}

// SummarizeOther records the identity of an unclassified entity.
func SummarizeOther(e *Entity) OtherRef {
	return OtherRef{ID: e.ID, Types: e.Types}
}
