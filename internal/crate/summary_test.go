package crate

import (
	"reflect"
	"testing"
)

func TestSummarizeFile(t *testing.T) {
	e := &Entity{
		ID:    "#f1",
		Types: []string{"File"},
		Attrs: map[string]interface{}{
			"alternateName":  "out.csv",
			"sha1":           "abc123",
			"encodingFormat": "text/csv",
			"exampleOfWork":  map[string]interface{}{"@id": "#work1"},
		},
	}
	got := SummarizeFile(e)
	want := FileSummary{
		ID:             "#f1",
		Name:           "out.csv",
		SHA1:           "abc123",
		EncodingFormat: "text/csv",
		ExampleOfWork:  map[string]interface{}{"@id": "#work1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SummarizeFile = %+v, want %+v", got, want)
	}
}

func TestSummarizeFileFormatFallback(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]interface{}
		want  string
	}{
		{
			name:  "encodingFormat preferred",
			attrs: map[string]interface{}{"encodingFormat": "text/csv", "fileFormat": "ignored"},
			want:  "text/csv",
		},
		{
			name:  "fileFormat fallback",
			attrs: map[string]interface{}{"fileFormat": "application/json"},
			want:  "application/json",
		},
		{
			name:  "neither present",
			attrs: map[string]interface{}{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entity{ID: "#f", Types: []string{"File"}, Attrs: tt.attrs}
			if got := SummarizeFile(e).EncodingFormat; got != tt.want {
				t.Errorf("EncodingFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarizeParam(t *testing.T) {
	e := &Entity{
		ID:    "#p1",
		Types: []string{"PropertyValue"},
		Attrs: map[string]interface{}{"name": "site_id", "value": "site001"},
	}
	got := SummarizeParam(e)
	if got.Name != "site_id" || got.Value != "site001" {
		t.Errorf("SummarizeParam = %+v", got)
	}
}

func TestSummarizeToolNil(t *testing.T) {
	if SummarizeTool(nil) != nil {
		t.Error("SummarizeTool(nil) must be nil")
	}
}

func TestSummarizeTool(t *testing.T) {
	e := &Entity{
		ID:    "#tool1",
		Types: []string{"SoftwareApplication"},
		Attrs: map[string]interface{}{
			"name":   "Analysis Tool",
			"input":  []interface{}{map[string]interface{}{"@id": "#in"}},
			"output": []interface{}{"#out"},
		},
	}
	got := SummarizeTool(e)
	if got.Name != "Analysis Tool" {
		t.Errorf("Name = %q", got.Name)
	}
	if !reflect.DeepEqual(got.Inputs, []string{"#in"}) {
		t.Errorf("Inputs = %v, want [#in]", got.Inputs)
	}
	if !reflect.DeepEqual(got.Outputs, []string{"#out"}) {
		t.Errorf("Outputs = %v, want [#out]", got.Outputs)
	}
}

func TestSummarizeAction(t *testing.T) {
	e := &Entity{
		ID:    "#a1",
		Types: []string{"CreateAction"},
		Attrs: map[string]interface{}{
			"name":      "Run analysis",
			"startTime": "2024-03-01T10:00:00Z",
			"endTime":   "2024-03-01T10:05:00Z",
		},
	}
	got := SummarizeAction(e)
	if got.Name != "Run analysis" || got.StartTime == "" || got.EndTime == "" {
		t.Errorf("SummarizeAction = %+v", got)
	}
}
