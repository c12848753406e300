package transcribe

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLinearize_SpeakerTurns(t *testing.T) {
	results := []Result{{
		Words: []Word{
			{Text: "Hello", SpeakerTag: 1},
			{Text: "there", SpeakerTag: 1},
			{Text: "Hi", SpeakerTag: 2},
			{Text: "Back", SpeakerTag: 1},
		},
	}}

	got := Linearize(results)

	// first label before any words, then one label per tag change
	tagChanges := 2
	wantLabels := tagChanges + 1
	if n := strings.Count(got, "Speaker "); n != wantLabels {
		t.Errorf("label count = %d, want %d\noutput: %q", n, wantLabels, got)
	}
	if !strings.HasPrefix(got, "\n\nSpeaker 1: ") {
		t.Errorf("output should open with the first speaker label, got %q", got)
	}
	for _, want := range []string{"Speaker 1: Hello there", "Speaker 2: Hi", "Speaker 1: Back"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%q", want, got)
		}
	}
}

func TestLinearize_SingleSpeaker(t *testing.T) {
	results := []Result{{
		Words: []Word{{Text: "just", SpeakerTag: 1}, {Text: "me", SpeakerTag: 1}},
	}}

	got := Linearize(results)

	if n := strings.Count(got, "Speaker "); n != 1 {
		t.Errorf("label count = %d, want 1", n)
	}
}

func TestLinearize_EmptyWordStreamFallsBack(t *testing.T) {
	results := []Result{
		{Transcript: "first part"},
		{Transcript: "second part"},
	}

	got := Linearize(results)

	if got != "first part second part" {
		t.Errorf("fallback transcript = %q", got)
	}
	if strings.Contains(got, "Speaker") {
		t.Errorf("fallback must not carry speaker labels: %q", got)
	}
}

func TestLinearize_UsesLastResultWords(t *testing.T) {
	results := []Result{
		{Words: []Word{{Text: "stale", SpeakerTag: 1}}},
		{Words: []Word{{Text: "fresh", SpeakerTag: 2}}},
	}

	got := Linearize(results)

	if !strings.Contains(got, "fresh") || strings.Contains(got, "stale") {
		t.Errorf("expected only the final result's words, got %q", got)
	}
}

type fakeStore struct {
	uploadErr error
	deleted   []string
	deleteErr error
}

func (f *fakeStore) Upload(ctx context.Context, localPath, name string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "gs://bucket/" + name, nil
}

func (f *fakeStore) Delete(ctx context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return f.deleteErr
}

type fakeSpeech struct {
	uri     string
	results []Result
	err     error
}

func (f *fakeSpeech) Recognize(ctx context.Context, uri string) ([]Result, error) {
	f.uri = uri
	return f.results, f.err
}

func testStage(store *fakeStore, speech *fakeSpeech) *Stage {
	stage := NewStage(store, speech)
	stage.Transcode = func(ctx context.Context, path string) (string, error) {
		return path + ".flac", nil
	}
	return stage
}

func TestStage_Success(t *testing.T) {
	store := &fakeStore{}
	speech := &fakeSpeech{results: []Result{{
		Words: []Word{{Text: "Hello", SpeakerTag: 1}},
	}}}
	stage := testStage(store, speech)

	got, err := stage.Transcribe(context.Background(), "/tmp/call.mp4", "call.mp4")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if !strings.Contains(got, "Speaker 1: Hello") {
		t.Errorf("transcript = %q", got)
	}
	if speech.uri != "gs://bucket/call.flac" {
		t.Errorf("speech uri = %q", speech.uri)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "call.flac" {
		t.Errorf("intermediate object not cleaned up: %v", store.deleted)
	}
}

func TestStage_NoResultsIsError(t *testing.T) {
	stage := testStage(&fakeStore{}, &fakeSpeech{results: nil})

	_, err := stage.Transcribe(context.Background(), "/tmp/silent.mp4", "silent.mp4")
	if err == nil {
		t.Fatal("Transcribe() should report silent audio as an error")
	}
	if !strings.Contains(err.Error(), "silent") {
		t.Errorf("error = %v", err)
	}
}

func TestStage_UploadFailureIsTerminal(t *testing.T) {
	store := &fakeStore{uploadErr: errors.New("bucket unreachable")}
	speech := &fakeSpeech{}
	stage := testStage(store, speech)

	_, err := stage.Transcribe(context.Background(), "/tmp/a.mp4", "a.mp4")
	if err == nil {
		t.Fatal("Transcribe() should fail")
	}
	if speech.uri != "" {
		t.Error("speech must not be called after the upload fails")
	}
}

func TestStage_DeleteFailureNotSurfaced(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("already gone")}
	speech := &fakeSpeech{results: []Result{{Words: []Word{{Text: "hi", SpeakerTag: 1}}}}}
	stage := testStage(store, speech)

	if _, err := stage.Transcribe(context.Background(), "/tmp/a.mp4", "a.mp4"); err != nil {
		t.Errorf("cleanup failure must not surface: %v", err)
	}
}
