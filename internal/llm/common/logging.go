package common

import (
	"fmt"
	"log/slog"
)

// LogAPIRequest logs standardized request information for any transport
func LogAPIRequest(logger *slog.Logger, providerName, modelName string, messages []Message, config *GenerateOptions) {
	if logger == nil {
		return
	}

	args := []interface{}{
		"model", modelName,
		"message_count", len(messages),
	}

	if config != nil {
		if config.Temperature != nil {
			args = append(args, "temperature", *config.Temperature)
		}
		if config.MaxTokens != nil {
			args = append(args, "max_tokens", *config.MaxTokens)
		}
		if config.TopP != nil {
			args = append(args, "top_p", *config.TopP)
		}
	}

	logger.Debug(fmt.Sprintf("Sending request to %s", providerName), args...)
}

// LogHTTPResponse logs basic HTTP response information
func LogHTTPResponse(logger *slog.Logger, statusCode int, bodyLength int) {
	if logger == nil {
		return
	}
	logger.Debug("Received API response",
		"status_code", statusCode,
		"body_length", bodyLength)
}

// LogRawResponse logs the raw API response body for debugging
func LogRawResponse(logger *slog.Logger, body string, statusCode int) {
	if logger == nil {
		return
	}
	logger.Debug("Raw API response",
		"body", body,
		"status_code", statusCode)
}

// LogTokenUsage logs token consumption from a standard Usage struct
func LogTokenUsage(logger *slog.Logger, usage Usage) {
	if logger == nil {
		return
	}
	logger.Debug("Parsed API response",
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
		"total_tokens", usage.TotalTokens)
}

// LogRequestCompletion logs successful request completion
func LogRequestCompletion(logger *slog.Logger, contentLength int) {
	if logger == nil {
		return
	}
	logger.Debug("Request completed successfully",
		"response_length", contentLength)
}

// LogRequestExecution logs the single outbound call
func LogRequestExecution(logger *slog.Logger, url string, timeoutSeconds float64) {
	if logger == nil {
		return
	}
	logger.Debug("Executing API request",
		"url", url,
		"timeout_seconds", timeoutSeconds)
}

// LogRequestFailure logs a request that never produced a response
func LogRequestFailure(logger *slog.Logger, url string, err error) {
	if logger == nil {
		return
	}
	logger.Error("API request failed",
		"url", url,
		"error", err)
}

// LogJSONUnmarshalError logs JSON parsing errors with context
func LogJSONUnmarshalError(logger *slog.Logger, err error, responseBody string) {
	if logger == nil {
		return
	}
	logger.Error("Failed to unmarshal JSON response",
		"error", err,
		"response_body", responseBody)
}
