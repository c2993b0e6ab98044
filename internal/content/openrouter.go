package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// OpenRouter generates words and idioms through the OpenRouter
// chat-completions API. Every failure path degrades to Fallback.
type OpenRouter struct {
	url        string
	model      string
	defaultKey string
	client     *http.Client
}

func NewOpenRouter(url, model, defaultKey string, timeout time.Duration) *OpenRouter {
	return &OpenRouter{
		url:        url,
		model:      model,
		defaultKey: defaultKey,
		client:     &http.Client{Timeout: timeout},
	}
}

func (o *OpenRouter) Fetch(ctx context.Context, req Request) Pack {
	pack, err := o.generate(ctx, req)
	if err != nil {
		log.Warn().Err(err).
			Str("language", string(req.Language)).
			Str("mode", string(req.Mode)).
			Msg("content generation failed, using fallback")
		return Fallback(req.Language, req.Mode)
	}
	return pack
}

func (o *OpenRouter) generate(ctx context.Context, req Request) (Pack, error) {
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = o.defaultKey
	}
	if apiKey == "" {
		return Pack{}, fmt.Errorf("no api key")
	}

	body, err := json.Marshal(map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "user", "content": buildPrompt(req)},
		},
	})
	if err != nil {
		return Pack{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(body))
	if err != nil {
		return Pack{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("X-Title", "Word Guessing Game")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return Pack{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Pack{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Pack{}, fmt.Errorf("openrouter status %d: %s", resp.StatusCode, raw)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Pack{}, err
	}
	if len(parsed.Choices) == 0 {
		return Pack{}, fmt.Errorf("empty completion")
	}

	return parsePack(parsed.Choices[0].Message.Content, req.Mode)
}

// parsePack extracts the JSON object embedded in a model reply. Replies
// often wrap the object in prose or code fences, so only the outermost
// brace pair is considered.
func parsePack(reply string, mode Mode) (Pack, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end <= start {
		return Pack{}, fmt.Errorf("no JSON object in reply")
	}

	var payload struct {
		Word  string   `json:"word"`
		Idiom string   `json:"idiom"`
		Hints []string `json:"hints"`
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &payload); err != nil {
		return Pack{}, fmt.Errorf("parse reply: %w", err)
	}

	// content may arrive under either key regardless of the mode asked for
	text := payload.Word
	if mode == ModeIdioms {
		text = payload.Idiom
		if text == "" {
			text = payload.Word
		}
	} else if text == "" {
		text = payload.Idiom
	}

	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" || len(payload.Hints) == 0 {
		return Pack{}, fmt.Errorf("reply missing content or hints")
	}
	return Pack{Content: text, Hints: payload.Hints}, nil
}

func buildPrompt(req Request) string {
	historyText := ""
	if len(req.History) > 0 {
		historyText = fmt.Sprintf("Previously used %s that you should NOT use again: %s.",
			req.Mode, strings.Join(req.History, ", "))
	}

	if req.Mode == ModeIdioms {
		if req.Language == LangSpanish {
			return fmt.Sprintf(`Genera un refrán o dicho popular en español para un juego de adivinanzas. %s Proporciona el refrán y 3 pistas diferentes, ordenadas de menos específica a más específica. Responde en formato JSON: {"idiom": "refrán completo", "hints": ["pista1", "pista2", "pista3"]}`, historyText)
		}
		return fmt.Sprintf(`Generate a popular idiom or proverb in English for a guessing game. %s Provide the idiom and 3 different hints, ordered from least specific to most specific. Answer in JSON format: {"idiom": "complete idiom", "hints": ["hint1", "hint2", "hint3"]}`, historyText)
	}

	if req.Language == LangSpanish {
		return fmt.Sprintf(`Genera una palabra aleatoria en español (sustantivo común) para un juego de adivinanzas. %s Proporciona la palabra y 3 pistas diferentes sobre la palabra, ordenadas de menos específica a más específica. Responde en formato JSON: {"word": "palabra", "hints": ["pista1", "pista2", "pista3"]}`, historyText)
	}
	return fmt.Sprintf(`Generate a random word in English (common noun) for a guessing game. %s Provide the word and 3 different hints about the word, ordered from least specific to most specific. Answer in JSON format: {"word": "word", "hints": ["hint1", "hint2", "hint3"]}`, historyText)
}
