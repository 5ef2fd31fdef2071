package xfyun

import "testing"

func TestParseOrderResult(t *testing.T) {
	orderResult := `{"lattice": [` +
		`{"json_1best": "{\"st\": {\"rl\": \"2\", \"bg\": \"5000\", \"rt\": [{\"ws\": [{\"cw\": [{\"w\": \"second\"}]}]}]}}"},` +
		`{"json_1best": "{\"st\": {\"rl\": \"1\", \"bg\": \"1000\", \"rt\": [{\"ws\": [{\"cw\": [{\"w\": \"first\"}]}]}]}}"},` +
		`{"json_1best": "not json"}` +
		`]}`

	segments, err := parseOrderResult(&resultContent{OrderResult: orderResult})
	if err != nil {
		t.Fatalf("parseOrderResult: %v", err)
	}

	if len(segments) != 2 {
		t.Fatalf("segments = %d, want 2 (broken lattice entries are skipped)", len(segments))
	}
	if segments[0].Text != "first" || segments[0].Speaker != "Speaker 1" {
		t.Errorf("segments must sort by begin time, got %+v", segments[0])
	}
	if segments[1].BeginMs != 5000 {
		t.Errorf("BeginMs = %d, want 5000", segments[1].BeginMs)
	}
}

func TestParseOrderResultEmpty(t *testing.T) {
	if _, err := parseOrderResult(&resultContent{}); err == nil {
		t.Fatal("expected an error for an empty order result")
	}
}

func TestFormatDialogue(t *testing.T) {
	got := FormatDialogue([]Segment{
		{Speaker: "Speaker 1", Text: "hello"},
		{Speaker: "Speaker 2", Text: "hi there"},
	})
	want := "Speaker 1: hello\nSpeaker 2: hi there"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
