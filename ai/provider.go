package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const DefaultBaseURL = "https://openrouter.ai/api/v1"

var ErrNoImage = errors.New("no image in response")

// TextRequest asks for a JSON document conforming to Schema.
type TextRequest struct {
	Model      string
	Prompt     string
	SchemaName string
	Schema     json.Marshaler
}

type ImageRequest struct {
	Model       string
	Prompt      string
	Count       int
	AspectRatio string // "16:9", "9:16" or square
}

// Image holds either raw bytes or an already base64-encoded payload.
type Image struct {
	Data     []byte
	Base64   string
	MIMEType string
}

type Provider struct {
	client *openai.Client
}

func NewProvider(apiKey, baseURL string) *Provider {
	config := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	config.BaseURL = baseURL

	return &Provider{
		client: openai.NewClientWithConfig(config),
	}
}

// GenerateJSON sends a single-turn prompt with a response schema and returns
// the raw content of the first choice.
func (p *Provider) GenerateJSON(ctx context.Context, req TextRequest) (string, error) {
	logrus.WithFields(logrus.Fields{
		"model":  req.Model,
		"schema": req.SchemaName,
	}).Info("Sending structured request to AI model")

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: req.Schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		logrus.WithError(err).WithField("model", req.Model).Error("❌ AI API request failed")
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		logrus.WithField("model", req.Model).Error("❌ No response choices returned")
		return "", fmt.Errorf("no response choices returned")
	}

	content := resp.Choices[0].Message.Content

	logrus.WithFields(logrus.Fields{
		"model":             req.Model,
		"content_length":    len(content),
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"total_tokens":      resp.Usage.TotalTokens,
		"finish_reason":     resp.Choices[0].FinishReason,
	}).Info("✅ AI response received successfully")

	return content, nil
}

// GenerateImage requests base64 image data and returns the first image.
func (p *Provider) GenerateImage(ctx context.Context, req ImageRequest) (Image, error) {
	n := req.Count
	if n <= 0 {
		n = 1
	}

	logrus.WithFields(logrus.Fields{
		"model":        req.Model,
		"aspect_ratio": req.AspectRatio,
	}).Info("Sending image request to AI model")

	resp, err := p.client.CreateImage(ctx, openai.ImageRequest{
		Model:          req.Model,
		Prompt:         req.Prompt,
		N:              n,
		Size:           imageSize(req.AspectRatio),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		logrus.WithError(err).WithField("model", req.Model).Error("❌ Image API request failed")
		return Image{}, fmt.Errorf("create image: %w", err)
	}

	for _, d := range resp.Data {
		if d.B64JSON != "" {
			logrus.WithFields(logrus.Fields{
				"model":        req.Model,
				"payload_size": len(d.B64JSON),
			}).Info("✅ Image received successfully")
			return Image{Base64: d.B64JSON, MIMEType: "image/png"}, nil
		}
	}

	logrus.WithField("model", req.Model).Warn("Image response carried no inline data")
	return Image{}, ErrNoImage
}

func imageSize(aspectRatio string) string {
	switch aspectRatio {
	case "16:9":
		return openai.CreateImageSize1792x1024
	case "9:16":
		return openai.CreateImageSize1024x1792
	default:
		return openai.CreateImageSize1024x1024
	}
}
