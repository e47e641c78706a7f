package suggestions_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/verdantapp/verdant/internal/suggestions"
)

type fakeChatter struct {
	content string
	err     error
	prompt  string
}

func (f *fakeChatter) Chat(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.content, f.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(chatter *fakeChatter) suggestions.System {
	return suggestions.NewWithChatter(chatter, 5*time.Second, discard())
}

const validReply = `["I'll check a thrift store before buying new clothes", "I will wash synthetic clothes in a laundry bag", "I'll donate clothes I haven't worn in 6 months"]`

func TestGenerate(t *testing.T) {
	chatter := &fakeChatter{content: validReply}

	got, err := newService(chatter).Generate(context.Background(), suggestions.Command{
		ArticleTitle: "The True Cost of Fast Fashion",
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("suggestions = %d, want 3", len(got))
	}
	if !strings.HasPrefix(got[0], "I'll") {
		t.Errorf("suggestion = %q, want first-person commitment", got[0])
	}
}

func TestGenerateFencedReply(t *testing.T) {
	chatter := &fakeChatter{content: "```json\n" + validReply + "\n```"}

	got, err := newService(chatter).Generate(context.Background(), suggestions.Command{
		ArticleTitle: "The True Cost of Fast Fashion",
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("suggestions = %d, want 3", len(got))
	}
}

func TestGenerateMissingTitle(t *testing.T) {
	_, err := newService(&fakeChatter{content: validReply}).Generate(context.Background(), suggestions.Command{})

	if !errors.Is(err, suggestions.ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestGenerateChatError(t *testing.T) {
	chatter := &fakeChatter{err: errors.New("connection refused")}

	_, err := newService(chatter).Generate(context.Background(), suggestions.Command{
		ArticleTitle: "Microplastics in Our Water",
	})

	if !errors.Is(err, suggestions.ErrGeneration) {
		t.Errorf("err = %v, want ErrGeneration", err)
	}
}

func TestGenerateWrongCount(t *testing.T) {
	chatter := &fakeChatter{content: `["only one suggestion"]`}

	_, err := newService(chatter).Generate(context.Background(), suggestions.Command{
		ArticleTitle: "Microplastics in Our Water",
	})

	if !errors.Is(err, suggestions.ErrGeneration) {
		t.Errorf("err = %v, want ErrGeneration", err)
	}
}

func TestGenerateUnparseableReply(t *testing.T) {
	chatter := &fakeChatter{content: "Here are some ideas for you!"}

	_, err := newService(chatter).Generate(context.Background(), suggestions.Command{
		ArticleTitle: "Microplastics in Our Water",
	})

	if !errors.Is(err, suggestions.ErrGeneration) {
		t.Errorf("err = %v, want ErrGeneration", err)
	}
}

func TestGeneratePromptComposition(t *testing.T) {
	chatter := &fakeChatter{content: validReply}

	_, err := newService(chatter).Generate(context.Background(), suggestions.Command{
		ArticleTitle:    "The True Cost of Fast Fashion",
		ArticleSubtitle: "What your wardrobe costs the planet",
		KeyTakeaways:    []string{"Fashion produces 10% of global emissions"},
		ArticleContent:  "<p>Fast fashion brands release new collections weekly.</p>",
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if !strings.Contains(chatter.prompt, "The True Cost of Fast Fashion") {
		t.Error("prompt missing article title")
	}
	if !strings.Contains(chatter.prompt, "What your wardrobe costs the planet") {
		t.Error("prompt missing subtitle")
	}
	if !strings.Contains(chatter.prompt, "Fashion produces 10% of global emissions") {
		t.Error("prompt missing takeaway")
	}
	if strings.Contains(chatter.prompt, "<p>") {
		t.Error("prompt should not contain markup")
	}
	if !strings.Contains(chatter.prompt, "Fast fashion brands release new collections weekly.") {
		t.Error("prompt missing article excerpt")
	}
}

func TestGenerateTruncatesLongContent(t *testing.T) {
	chatter := &fakeChatter{content: validReply}

	long := strings.Repeat("waste reduction matters. ", 200)
	_, err := newService(chatter).Generate(context.Background(), suggestions.Command{
		ArticleTitle:   "Zero Waste Living",
		ArticleContent: long,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if len(chatter.prompt) > len(long) {
		t.Error("prompt should truncate long article content")
	}
}

func TestGenerateTruncationKeepsValidUTF8(t *testing.T) {
	chatter := &fakeChatter{content: validReply}

	// three-byte runes guarantee the byte cap falls mid-rune
	long := strings.Repeat("水", 400)
	_, err := newService(chatter).Generate(context.Background(), suggestions.Command{
		ArticleTitle:   "Saving Water at Home",
		ArticleContent: long,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if !utf8.ValidString(chatter.prompt) {
		t.Error("prompt contains invalid UTF-8 after truncation")
	}
}

func TestHandlerGenerate(t *testing.T) {
	newMux := func(sys suggestions.System) *http.ServeMux {
		h := suggestions.NewHandler(sys, discard())
		mux := http.NewServeMux()
		group := h.Routes()
		for _, route := range group.Routes {
			pattern := route.Method + " " + group.Prefix + route.Pattern
			mux.HandleFunc(pattern, route.Handler)
		}
		return mux
	}

	t.Run("returns suggestions", func(t *testing.T) {
		mux := newMux(newService(&fakeChatter{content: validReply}))

		body := bytes.NewBufferString(`{"article_title":"The True Cost of Fast Fashion"}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/suggestions", body)
		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var resp suggestions.GenerateResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Suggestions) != 3 {
			t.Errorf("suggestions = %d, want 3", len(resp.Suggestions))
		}
	})

	t.Run("missing title returns 400", func(t *testing.T) {
		mux := newMux(newService(&fakeChatter{content: validReply}))

		body := bytes.NewBufferString(`{}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/suggestions", body)
		mux.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("generation failure returns 500", func(t *testing.T) {
		mux := newMux(newService(&fakeChatter{err: errors.New("model unavailable")}))

		body := bytes.NewBufferString(`{"article_title":"Zero Waste Living"}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/suggestions", body)
		mux.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
	})
}
