// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Check the graph store and report service health",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SuccessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/feedback": {
            "post": {
                "description": "Store one judgment about a chatbot answer",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["feedback"],
                "summary": "Submit feedback",
                "parameters": [
                    {"description": "Feedback payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.FeedbackCreate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/feedback/analytics": {
            "get": {
                "description": "Totals, satisfaction rate and average rating across all feedback",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Overall analytics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SuccessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/feedback/trends": {
            "get": {
                "description": "Daily counts per feedback type over a trailing window",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Feedback trends",
                "parameters": [
                    {"type": "integer", "default": 30, "description": "Window in days (1-365)", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/feedback/intents": {
            "get": {
                "description": "Satisfaction per detected intent, weakest first",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Intent performance",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SuccessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/feedback/engagement": {
            "get": {
                "description": "Most active users by feedback volume",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "User engagement",
                "parameters": [
                    {"type": "integer", "default": 20, "description": "Number of users (1-100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/feedback/categories": {
            "get": {
                "description": "Counts and satisfaction per feedback category",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Category insights",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SuccessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.FeedbackCreate": {
            "type": "object",
            "required": ["user_query", "bot_response", "feedback_type", "rating_stars", "timestamp"],
            "properties": {
                "user_query": {"type": "string"},
                "bot_response": {"type": "string"},
                "feedback_type": {"type": "string", "enum": ["positive", "negative"]},
                "user_comment": {"type": "string"},
                "rating_stars": {"type": "integer", "minimum": 1, "maximum": 5},
                "message_id": {"type": "string"},
                "categories": {"type": "array", "items": {"type": "string"}},
                "timestamp": {"type": "string", "example": "2025-01-15T10:30:00Z"}
            }
        },
        "types.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "message": {"type": "string"},
                "timestamp": {"type": "string"},
                "data": {}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"type": "string"},
                "timestamp": {"type": "string"},
                "details": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Chatbot Feedback API",
	Description:      "Collects user feedback on chatbot answers and serves analytics over it.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
