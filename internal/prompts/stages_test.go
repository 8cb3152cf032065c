package prompts

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Stage
		wantErr error
	}{
		{name: "preprocess", input: "preprocess", want: StagePreprocess},
		{name: "classify", input: "classify", want: StageClassify},
		{name: "deadlines", input: "deadlines", want: StageDeadlines},
		{name: "validate", input: "validate", want: StageValidate},
		{name: "unknown", input: "summarize", wantErr: ErrInvalidStage},
		{name: "empty", input: "", wantErr: ErrInvalidStage},
		{name: "case sensitive", input: "Classify", wantErr: ErrInvalidStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStage(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseStage(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStage(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStageUnmarshalJSON(t *testing.T) {
	var cmd CreateCommand
	body := `{"name": "tuned", "stage": "deadlines", "instructions": "Extract every deadline."}`
	if err := json.Unmarshal([]byte(body), &cmd); err != nil {
		t.Fatalf("unmarshal valid stage: %v", err)
	}
	if cmd.Stage != StageDeadlines {
		t.Errorf("Stage = %q, want %q", cmd.Stage, StageDeadlines)
	}

	bad := `{"name": "tuned", "stage": "translate", "instructions": "x"}`
	if err := json.Unmarshal([]byte(bad), &cmd); !errors.Is(err, ErrInvalidStage) {
		t.Errorf("unmarshal invalid stage error = %v, want %v", err, ErrInvalidStage)
	}
}

func TestStages(t *testing.T) {
	got := Stages()
	if len(got) != 4 {
		t.Fatalf("Stages() returned %d stages, want 4", len(got))
	}
	if got[0] != StagePreprocess || got[3] != StageValidate {
		t.Errorf("Stages() order = %v", got)
	}
}
