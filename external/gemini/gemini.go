package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultURL   = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultModel = "gemini-1.5-flash"

	analyzePrompt = "Act as a medical document analyzer. Extract the patient's name, age, gender, and any medical conditions (cardiovascular, respiratory, or metabolic) from this image or file content. Respond in JSON format only: { name: string, age: number, conditions: { cardiovascular: boolean, respiratory: boolean, metabolic: boolean }, specific: string[] }"
)

var (
	ErrNotConfigured = fmt.Errorf("empty api key")
	errEmptyResponse = fmt.Errorf("empty model response")
)

// Extraction - structured medical profile fields pulled out of a document
type Extraction struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Conditions struct {
		Cardiovascular bool `json:"cardiovascular"`
		Respiratory    bool `json:"respiratory"`
		Metabolic      bool `json:"metabolic"`
	} `json:"conditions"`
	Specific []string `json:"specific"`
}

// Client calls the generative document-understanding endpoint.
type Client struct {
	apiKey     string
	url        string
	model      string
	httpClient *http.Client
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// New returns a document-understanding client. url is optional and defaults
// to the public endpoint.
func New(apiKey, url string) *Client {
	if url == "" {
		url = defaultURL
	}
	return &Client{
		apiKey: apiKey,
		url:    url,
		model:  DefaultModel,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// AnalyzeDocument extracts a medical profile from a base64-encoded document
// image. Any transport, model or parse failure is returned as a single
// error; callers surface it as a generic processing failure.
func (c *Client) AnalyzeDocument(ctx context.Context, imageBase64 string) (*Extraction, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: analyzePrompt},
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     imageBase64,
				}},
			},
		}},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", c.url, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var gr generateResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return nil, err
	}
	if gr.Error != nil {
		return nil, fmt.Errorf("model error: %s", gr.Error.Message)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, errEmptyResponse
	}

	var extraction Extraction
	if err := json.Unmarshal([]byte(stripFences(gr.Candidates[0].Content.Parts[0].Text)), &extraction); err != nil {
		return nil, err
	}

	return &extraction, nil
}

// stripFences removes the markdown code fences models tend to wrap JSON in.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
