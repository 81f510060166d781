// internal/common/validation/schema.go
package validation

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "hrms-chatbot/internal/common/errors"
)

// chatRequestSchema fixes the shape of the inbound chat payload before the
// pipeline ever sees it: a message string plus an optional bounded history.
const chatRequestSchema = `{
	"type": "object",
	"properties": {
		"message": { "type": "string", "maxLength": 2000 },
		"history": {
			"type": "array",
			"maxItems": 50,
			"items": {
				"type": "object",
				"properties": {
					"role":    { "type": "string", "enum": ["user", "assistant"] },
					"content": { "type": "string", "maxLength": 4000 }
				},
				"required": ["role", "content"],
				"additionalProperties": false
			}
		}
	},
	"required": ["message"],
	"additionalProperties": false
}`

var chatRequestLoader = gojsonschema.NewStringLoader(chatRequestSchema)

// ValidateChatRequest checks a raw JSON body against the request schema.
// Returns a ValidationError naming the first offending field.
func ValidateChatRequest(body []byte) error {
	result, err := gojsonschema.Validate(chatRequestLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return apperrors.NewValidationError("body", "request is not valid JSON")
	}
	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	field := first.Field()
	if field == "(root)" {
		field = "body"
	}
	return apperrors.NewValidationError(field, strings.TrimSpace(first.Description()))
}
