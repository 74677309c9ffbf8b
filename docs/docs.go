// Package docs holds the Swagger specification served under /swagger/ when
// built with -tags=swagger. Regenerate with `swag init -g cmd/modelgate/docs.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "modelgate maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/models": {
            "get": {
                "description": "Lists models installed on the model daemon, excluding embedding-only models.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "models"
                ],
                "summary": "List chat models",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/types.ModelInfo"
                            }
                        }
                    },
                    "404": {
                        "description": "no chat model installed",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "model daemon unavailable",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "description": "HTTP status code.",
                    "type": "integer",
                    "example": 404
                },
                "error": {
                    "description": "Error message.",
                    "type": "string",
                    "example": "No chat models found. Please install one with: ollama pull llama3.2"
                }
            }
        },
        "types.ModelInfo": {
            "type": "object",
            "properties": {
                "modified_at": {
                    "description": "Last modification time reported by the daemon.",
                    "type": "string",
                    "example": "2024-10-01T12:00:00.000000000Z"
                },
                "name": {
                    "description": "Model name as reported by the daemon.",
                    "type": "string",
                    "example": "llama3.2:latest"
                },
                "size": {
                    "description": "Size on disk in bytes.",
                    "type": "integer",
                    "example": 2019393189
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "modelgate API",
	Description:      "REST API listing chat-capable models installed on a local model daemon.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
