package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"radio-orbit/internal/config"
)

// systemInstruction fixes the assistant's persona and, crucially, the
// [SEARCH: "..."] convention the marker parser depends on.
const systemInstruction = `Eres un experto en radio mundial llamado "Orbit AI".
Tu misión es ayudar al usuario a encontrar emisoras.
Si el usuario pide un género o lugar, responde de forma breve y entusiasta.
IMPORTANTE: Siempre termina tu respuesta con una sugerencia de búsqueda en formato: [SEARCH: "termino de busqueda"].
Ejemplo: "¡Claro! En Cali la salsa es ley. [SEARCH: "Cali Salsa"]"`

const (
	emptyReplyMessage = "Recibí una señal vacía del espacio. Intenta de nuevo."
	failureMessage    = "Error de conexión con Orbit AI. Verifica la clave API configurada e intenta de nuevo."
)

// Client talks to the generative-text API behind the chat panel.
type Client struct {
	http    *http.Client
	baseURL string
	model   string
	apiKey  string
}

func New(cfg *config.Config) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: cfg.Assistant.BaseURL,
		model:   cfg.Assistant.Model,
		apiKey:  cfg.Assistant.APIKey,
	}
}

// Ask sends one prompt and returns the assistant's reply. It never
// fails from the caller's perspective: any transport or API problem
// yields the fixed fallback message instead of an error.
func (c *Client) Ask(ctx context.Context, prompt string) string {
	text, err := c.generate(ctx, prompt)
	if err != nil {
		log.Printf("❌ [Assistant] request failed: %v", err)
		return failureMessage
	}
	if text == "" {
		return emptyReplyMessage
	}
	return text
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"systemInstruction": map[string]any{
			"parts": []map[string]string{{"text": systemInstruction}},
		},
		"generationConfig": map[string]any{
			"temperature": 0.7,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	apiURL := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant status %d", resp.StatusCode)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
