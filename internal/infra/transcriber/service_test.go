package transcriber_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"blogsmith/internal/domain/entity"
	"blogsmith/internal/infra/transcriber"
)

type fakeDownloader struct {
	path string
	err  error
}

func (f *fakeDownloader) DownloadAudio(_ context.Context, _ string) (string, error) {
	return f.path, f.err
}

type fakeSpeech struct {
	transcript string
	err        error
	calls      int
}

func (f *fakeSpeech) TranscribeFile(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.transcript, f.err
}

/* ─────────── 1. Transcribe ─────────── */

func TestService_Transcribe(t *testing.T) {
	dl := &fakeDownloader{path: "/tmp/abc.mp3"}
	speech := &fakeSpeech{transcript: "hello world"}

	svc := transcriber.NewService(dl, speech)
	got, err := svc.Transcribe(context.Background(), "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("Transcribe err=%v", err)
	}
	if got != "hello world" {
		t.Errorf("want %q, got %q", "hello world", got)
	}
}

func TestService_Transcribe_DownloadError(t *testing.T) {
	dl := &fakeDownloader{err: errors.New("yt-dlp failed: video unavailable")}
	speech := &fakeSpeech{}

	svc := transcriber.NewService(dl, speech)
	_, err := svc.Transcribe(context.Background(), "https://youtu.be/abc")
	if err == nil {
		t.Fatal("expected error")
	}
	// ダウンロード失敗もこの境界で文字起こしエラーに畳む
	if !errors.Is(err, entity.ErrTranscriptionFailed) {
		t.Errorf("want ErrTranscriptionFailed, got %v", err)
	}
	if speech.calls != 0 {
		t.Errorf("speech API must not be called after download failure, calls=%d", speech.calls)
	}
}

func TestService_Transcribe_SpeechError(t *testing.T) {
	dl := &fakeDownloader{path: "/tmp/abc.mp3"}
	speech := &fakeSpeech{err: entity.ErrTranscriptionFailed}

	svc := transcriber.NewService(dl, speech)
	_, err := svc.Transcribe(context.Background(), "https://youtu.be/abc")
	if !errors.Is(err, entity.ErrTranscriptionFailed) {
		t.Fatalf("want ErrTranscriptionFailed, got %v", err)
	}
}

/* ─────────── 2. NoOp ─────────── */

func TestNoOp_MissingFile(t *testing.T) {
	n := transcriber.NewNoOp()

	_, err := n.TranscribeFile(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))
	if !errors.Is(err, entity.ErrAudioNotFound) {
		t.Fatalf("want ErrAudioNotFound, got %v", err)
	}
}

func TestNoOp_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.mp3")
	if err := os.WriteFile(path, []byte("mp3"), 0o600); err != nil {
		t.Fatal(err)
	}

	n := transcriber.NewNoOp()
	got, err := n.TranscribeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("TranscribeFile err=%v", err)
	}
	if got == "" {
		t.Error("want non-empty transcript")
	}
}

/* ─────────── 3. Config ─────────── */

func TestLoadConfig_Default(t *testing.T) {
	t.Setenv("TRANSCRIBER_TIMEOUT", "")

	cfg, err := transcriber.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig err=%v", err)
	}
	if cfg.Timeout.Minutes() != 15 {
		t.Errorf("want 15m default timeout, got %v", cfg.Timeout)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("TRANSCRIBER_TIMEOUT", "not-a-duration")

	if _, err := transcriber.LoadConfig(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
