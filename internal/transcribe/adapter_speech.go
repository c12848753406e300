package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"
)

// Config holds speech service settings.
type Config struct {
	Endpoint     string // base URL, default https://speech.googleapis.com
	Token        string // bearer token
	Language     string // default en-US
	MinSpeakers  int    // default 2
	MaxSpeakers  int    // default 6
	PollInterval time.Duration
}

// SpeechRESTAdapter implements SpeechAdapter against the long-running
// recognition REST API: submit a job, then poll the returned operation
// until it reports done. The wait is bounded only by the caller's context.
type SpeechRESTAdapter struct {
	config Config
	http   *http.Client
}

func NewSpeechRESTAdapter(cfg Config) *SpeechRESTAdapter {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://speech.googleapis.com"
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	if cfg.MinSpeakers <= 0 {
		cfg.MinSpeakers = 2
	}
	if cfg.MaxSpeakers <= 0 {
		cfg.MaxSpeakers = 6
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	return &SpeechRESTAdapter{
		config: cfg,
		http:   &http.Client{Timeout: time.Minute},
	}
}

// request/response shapes for the recognition API

type recognizeRequest struct {
	Config recognitionConfig `json:"config"`
	Audio  recognitionAudio  `json:"audio"`
}

type recognitionConfig struct {
	Encoding                   string            `json:"encoding"`
	LanguageCode               string            `json:"languageCode"`
	EnableAutomaticPunctuation bool              `json:"enableAutomaticPunctuation"`
	UseEnhanced                bool              `json:"useEnhanced"`
	Model                      string            `json:"model"`
	DiarizationConfig          diarizationConfig `json:"diarizationConfig"`
}

type diarizationConfig struct {
	EnableSpeakerDiarization bool `json:"enableSpeakerDiarization"`
	MinSpeakerCount          int  `json:"minSpeakerCount"`
	MaxSpeakerCount          int  `json:"maxSpeakerCount"`
}

type recognitionAudio struct {
	URI string `json:"uri"`
}

type operationResponse struct {
	Name     string          `json:"name"`
	Done     bool            `json:"done"`
	Error    *operationError `json:"error,omitempty"`
	Response *recognizeReply `json:"response,omitempty"`
}

type operationError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type recognizeReply struct {
	Results []speechResult `json:"results"`
}

type speechResult struct {
	Alternatives []speechAlternative `json:"alternatives"`
}

type speechAlternative struct {
	Transcript string       `json:"transcript"`
	Words      []speechWord `json:"words"`
}

type speechWord struct {
	Word       string `json:"word"`
	SpeakerTag int    `json:"speakerTag"`
}

// Recognize submits the diarized long-running recognition job for uri and
// polls until completion or ctx expiry.
func (a *SpeechRESTAdapter) Recognize(ctx context.Context, uri string) ([]Result, error) {
	opName, err := a.submit(ctx, uri)
	if err != nil {
		return nil, err
	}
	log.Printf("speech-adapter: operation %s submitted for %s", opName, uri)

	reply, err := a.await(ctx, opName)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(reply.Results))
	for _, r := range reply.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		alt := r.Alternatives[0]
		res := Result{Transcript: alt.Transcript}
		for _, w := range alt.Words {
			res.Words = append(res.Words, Word{Text: w.Word, SpeakerTag: w.SpeakerTag})
		}
		results = append(results, res)
	}
	return results, nil
}

func (a *SpeechRESTAdapter) submit(ctx context.Context, uri string) (string, error) {
	payload := recognizeRequest{
		Config: recognitionConfig{
			Encoding:                   "FLAC",
			LanguageCode:               a.config.Language,
			EnableAutomaticPunctuation: true,
			UseEnhanced:                true,
			Model:                      "video",
			DiarizationConfig: diarizationConfig{
				EnableSpeakerDiarization: true,
				MinSpeakerCount:          a.config.MinSpeakers,
				MaxSpeakerCount:          a.config.MaxSpeakers,
			},
		},
		Audio: recognitionAudio{URI: uri},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var op operationResponse
	if err := a.call(ctx, http.MethodPost, a.config.Endpoint+"/v1/speech:longrunningrecognize", body, &op); err != nil {
		return "", err
	}
	if op.Name == "" {
		return "", fmt.Errorf("speech api returned no operation name")
	}
	return op.Name, nil
}

// await polls the operation until done. Cancellation via ctx is the only
// way out of an unfinished job; the remote job itself is not cancelled.
func (a *SpeechRESTAdapter) await(ctx context.Context, opName string) (*recognizeReply, error) {
	ticker := time.NewTicker(a.config.PollInterval)
	defer ticker.Stop()

	for {
		var op operationResponse
		if err := a.call(ctx, http.MethodGet, a.config.Endpoint+"/v1/operations/"+opName, nil, &op); err != nil {
			return nil, err
		}

		if op.Done {
			if op.Error != nil {
				return nil, fmt.Errorf("speech operation failed: %s (code %d)", op.Error.Message, op.Error.Code)
			}
			if op.Response == nil {
				return &recognizeReply{}, nil
			}
			return op.Response, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("awaiting transcription: %w", ctx.Err())
		}
	}
}

func (a *SpeechRESTAdapter) call(ctx context.Context, method, url string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.config.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("speech api error (status %d): %s", resp.StatusCode, string(respBody))
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// String describes the adapter configuration for doctor-style output.
func (a *SpeechRESTAdapter) String() string {
	return "speech(" + a.config.Language + ", speakers " +
		strconv.Itoa(a.config.MinSpeakers) + ".." + strconv.Itoa(a.config.MaxSpeakers) + ")"
}
