package models

import "testing"

func TestPostMediaExclusivity(t *testing.T) {
	p := &SocialPost{}

	p.SetImage("https://cdn.test/a.png")
	if p.ImageURL == nil || p.VideoURL != nil {
		t.Fatalf("expected image only, got image=%v video=%v", p.ImageURL, p.VideoURL)
	}
	if p.CurrentMedia() != "https://cdn.test/a.png" {
		t.Errorf("unexpected current media %q", p.CurrentMedia())
	}

	p.SetVideo("https://cdn.test/b.mp4")
	if p.VideoURL == nil || p.ImageURL != nil {
		t.Fatalf("expected video only, got image=%v video=%v", p.ImageURL, p.VideoURL)
	}
	if p.CurrentMedia() != "https://cdn.test/b.mp4" {
		t.Errorf("unexpected current media %q", p.CurrentMedia())
	}
}

func TestCurrentMediaEmpty(t *testing.T) {
	p := &SocialPost{}
	if p.CurrentMedia() != "" {
		t.Errorf("expected no media, got %q", p.CurrentMedia())
	}
}

func TestProfileSignature(t *testing.T) {
	website := "https://atelier.example"
	email := "hello@atelier.example"

	p := &BrandProfile{AutoAppendSignature: true, Website: &website, ContactEmail: &email}
	sig := p.Signature()
	if sig == "" {
		t.Fatal("expected a signature")
	}

	content := p.WithSignature("New collection drops Friday.")
	if content == "New collection drops Friday." {
		t.Fatal("expected signature to be appended")
	}
	// Appending twice must not duplicate the block.
	if again := p.WithSignature(content); again != content {
		t.Errorf("signature appended twice:\n%s", again)
	}
}

func TestProfileSignatureDisabled(t *testing.T) {
	website := "https://atelier.example"
	p := &BrandProfile{AutoAppendSignature: false, Website: &website}
	if got := p.WithSignature("text"); got != "text" {
		t.Errorf("expected content unchanged, got %q", got)
	}
}

func TestProfileSignatureNoContacts(t *testing.T) {
	p := &BrandProfile{AutoAppendSignature: true}
	if got := p.WithSignature("text"); got != "text" {
		t.Errorf("expected content unchanged, got %q", got)
	}
}

func TestProfileVoiceFallsBackToTone(t *testing.T) {
	p := &BrandProfile{Tone: ToneEdgy}
	if p.Voice() != "edgy" {
		t.Errorf("expected tone fallback, got %q", p.Voice())
	}
	voice := "dry humour, short sentences"
	p.BrandVoice = &voice
	if p.Voice() != voice {
		t.Errorf("expected explicit voice, got %q", p.Voice())
	}
}

func TestFindCreditPack(t *testing.T) {
	if p := FindCreditPack("starter"); p == nil || p.Credits != 100 {
		t.Errorf("unexpected starter pack: %+v", p)
	}
	if p := FindCreditPack("enterprise"); p != nil {
		t.Errorf("expected nil for unknown pack, got %+v", p)
	}
}
