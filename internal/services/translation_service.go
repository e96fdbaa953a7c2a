package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/utils"
)

type translatedEntry struct {
	Locale string `json:"locale"`
	Text   string `json:"text"`
}

type translatedEntries struct {
	Translations []translatedEntry `json:"translations"`
}

// TranslationService produces listing copy in the site's other locales so
// admins only author descriptions once. Nil client disables the feature.
type TranslationService struct {
	client *openai.Client
}

func NewTranslationService(apiKey string) *TranslationService {
	if apiKey == "" {
		return &TranslationService{}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &TranslationService{client: &c}
}

func (s *TranslationService) Translate(ctx context.Context, req dtos.TranslateRequest) (*dtos.TranslateResponse, error) {
	if s.client == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusServiceUnavailable,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    "translation is not configured",
			Err:        utils.ErrExternalServiceFailure,
		}
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"translations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"locale": map[string]string{"type": "string"},
						"text":   map[string]string{"type": "string"},
					},
					"required":             []string{"locale", "text"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"translations"},
		"additionalProperties": false,
	}

	fn := shared.FunctionDefinitionParam{
		Name:        "report_translations",
		Description: openai.String("Return the text translated into every requested locale."),
		Strict:      openai.Bool(true),
		Parameters:  schema,
	}

	prompt := fmt.Sprintf(`Translate this real-estate listing text from %s into the locales: %s.

Return JSON by calling report_translations(strict), one entry per requested locale.
Keep numbers, unit designations and area figures exactly as written.

Text:
%s`, req.SourceLocale, strings.Join(req.TargetLocales, ", "), req.Text)

	chatReq := openai.ChatCompletionNewParams{
		Model: shared.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Tools: []openai.ChatCompletionToolParam{{
			Function: fn,
		}},
		ToolChoice: openai.ChatCompletionToolChoiceOptionUnionParam{
			OfChatCompletionNamedToolChoice: &openai.ChatCompletionNamedToolChoiceParam{
				Function: openai.ChatCompletionNamedToolChoiceFunctionParam{
					Name: "report_translations",
				},
			},
		},
	}

	resp, err := s.client.Chat.Completions.New(ctx, chatReq)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusServiceUnavailable,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    "translation failed",
			Err:        fmt.Errorf("openai: %w", err),
		}
	}
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, &utils.AppError{
			StatusCode: http.StatusServiceUnavailable,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    "translation failed",
			Err:        fmt.Errorf("openai: no function call returned"),
		}
	}

	var parsed translatedEntries
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.ToolCalls[0].Function.Arguments), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal translations: %w", err)
	}

	out := dtos.TranslateResponse{Translations: make(map[string]string, len(req.TargetLocales))}
	for _, e := range parsed.Translations {
		out.Translations[e.Locale] = e.Text
	}
	// the model occasionally skips a locale; surface the gap as the source text
	for _, loc := range req.TargetLocales {
		if _, ok := out.Translations[loc]; !ok {
			out.Translations[loc] = req.Text
		}
	}
	return &out, nil
}
