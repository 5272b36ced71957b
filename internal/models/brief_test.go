package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseBrief(t *testing.T) {
	t.Run("accepts objects", func(t *testing.T) {
		brief, err := ParseBrief([]byte(`  {"style":"trap","bpm":140}  `))
		if err != nil {
			t.Fatalf("ParseBrief() error = %v", err)
		}
		if brief.Len() != 2 {
			t.Errorf("expected 2 entries, got %d", brief.Len())
		}
		if string(brief.Raw()) != `{"style":"trap","bpm":140}` {
			t.Errorf("unexpected raw bytes %s", brief.Raw())
		}
	})

	tests := []struct {
		name  string
		input string
	}{
		{name: "array", input: `["trap"]`},
		{name: "string", input: `"trap"`},
		{name: "number", input: `140`},
		{name: "null", input: `null`},
		{name: "truncated", input: `{"style":"tr`},
		{name: "empty", input: ``},
		{name: "html error page", input: `<html>502</html>`},
	}

	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			if _, err := ParseBrief([]byte(tt.input)); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}

func TestBriefKeys(t *testing.T) {
	brief, err := ParseBrief([]byte(`{"style":"trap","mix_tips":["a","b"],"bpm":140,"key":{"root":"A"}}`))
	if err != nil {
		t.Fatalf("ParseBrief() error = %v", err)
	}

	t.Run("document order", func(t *testing.T) {
		want := []string{"style", "mix_tips", "bpm", "key"}
		if got := brief.Keys(); !reflect.DeepEqual(got, want) {
			t.Errorf("Keys() = %v, want %v", got, want)
		}
	})

	t.Run("Get", func(t *testing.T) {
		v, ok := brief.Get("bpm")
		if !ok || v.Int() != 140 {
			t.Errorf("Get(bpm) = %v, %v", v, ok)
		}
		if _, ok := brief.Get("missing"); ok {
			t.Error("expected missing key to be absent")
		}
	})

	t.Run("Get matches keys literally", func(t *testing.T) {
		dotted, err := ParseBrief([]byte(`{"a.b":1,"a":{"b":2}}`))
		if err != nil {
			t.Fatalf("ParseBrief() error = %v", err)
		}
		v, ok := dotted.Get("a.b")
		if !ok || v.Int() != 1 {
			t.Errorf("Get(a.b) = %v, %v; want 1", v, ok)
		}
	})

	t.Run("Raw returns a copy", func(t *testing.T) {
		raw := brief.Raw()
		raw[0] = '['
		if brief.Raw()[0] != '{' {
			t.Error("mutating Raw() result changed the brief")
		}
	})
}

func TestBriefJSON(t *testing.T) {
	type envelope struct {
		Idea  string `json:"idea"`
		Brief *Brief `json:"brief"`
	}

	input := `{"idea":"afro chill","brief":{"style":"afro","bpm":105}}`

	var env envelope
	if err := json.Unmarshal([]byte(input), &env); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got := env.Brief.Keys(); !reflect.DeepEqual(got, []string{"style", "bpm"}) {
		t.Errorf("unexpected keys %v", got)
	}

	out, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != input {
		t.Errorf("round trip = %s, want %s", out, input)
	}

	t.Run("rejects non-object", func(t *testing.T) {
		var b Brief
		if err := json.Unmarshal([]byte(`[1,2]`), &b); err == nil {
			t.Error("expected error for array")
		}
	})
}

func TestBriefRecord(t *testing.T) {
	brief, _ := ParseBrief([]byte(`{"style":"lofi"}`))

	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name    string
			record  func() *BriefRecord
			wantErr bool
		}{
			{
				name: "valid",
				record: func() *BriefRecord {
					r := NewBriefRecord("lofi podcast", brief, false)
					r.SetID("abc")
					return r
				},
			},
			{
				name:    "missing id",
				record:  func() *BriefRecord { return NewBriefRecord("lofi podcast", brief, false) },
				wantErr: true,
			},
			{
				name: "blank idea",
				record: func() *BriefRecord {
					r := NewBriefRecord("   ", brief, false)
					r.SetID("abc")
					return r
				},
				wantErr: true,
			},
			{
				name: "nil brief",
				record: func() *BriefRecord {
					r := NewBriefRecord("lofi podcast", nil, true)
					r.SetID("abc")
					return r
				},
				wantErr: true,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.record().Validate()
				if (err != nil) != tt.wantErr {
					t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("timestamps", func(t *testing.T) {
		r := NewBriefRecord("idea", brief, true)
		if r.CreatedAt().IsZero() || !r.CreatedAt().Equal(r.UpdatedAt()) {
			t.Error("expected matching non-zero timestamps on creation")
		}
		if !r.Streamed() {
			t.Error("expected streamed flag to be kept")
		}
	})
}
