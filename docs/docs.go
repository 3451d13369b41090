// Package docs holds the swagger document served at /swagger.
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
        "/api/replicate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["relay"],
                "summary": "Generate an image from a prompt",
                "parameters": [
                    {
                        "description": "prompt and model",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.GenerationRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.GenerationResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}}
                }
            }
        },
        "/api/openai/transcribe": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["relay"],
                "summary": "Transcribe base64 encoded audio",
                "parameters": [
                    {
                        "description": "base64 audio",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.TranscriptionRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "provider response", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controller.ErrorResponse"}}
                }
            }
        },
        "/api/images": {
            "get": {
                "produces": ["application/json"],
                "tags": ["images"],
                "summary": "Every generation record, paginated",
                "parameters": [{"type": "integer", "description": "zero based page", "name": "p", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["images"],
                "summary": "Save a generation record",
                "parameters": [
                    {
                        "description": "record",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/controller.CreateImageRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/images/self": {
            "get": {
                "produces": ["application/json"],
                "tags": ["images"],
                "summary": "Current user's generation records, newest first",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/images/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["images"],
                "summary": "Edit prompt or model of an owned record",
                "parameters": [
                    {"type": "integer", "description": "record id", "name": "id", "in": "path", "required": true},
                    {
                        "description": "fields to change",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/controller.UpdateImageRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["images"],
                "summary": "Delete an owned record",
                "parameters": [{"type": "integer", "description": "record id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/files": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Upload a file to the blob store",
                "parameters": [{"type": "file", "description": "file to upload", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/controller.Response"}}
                }
            }
        },
        "/api/files/self": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Files uploaded by the current user",
                "parameters": [{"type": "integer", "description": "zero based page", "name": "p", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/files/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Delete an uploaded file",
                "parameters": [{"type": "integer", "description": "file id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/user/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Create an account",
                "parameters": [
                    {
                        "description": "username, password, display_name, email",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.User"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/user/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Sign in with username and password",
                "parameters": [
                    {
                        "description": "credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/controller.LoginRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/user/logout": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Sign out",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/user/self": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/user/token": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Issue a bearer access token for the current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/oauth/google": {
            "get": {
                "tags": ["oauth"],
                "summary": "Redirect to Google sign-in",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/api/oauth/google/callback": {
            "get": {
                "produces": ["application/json"],
                "tags": ["oauth"],
                "summary": "Google sign-in callback",
                "parameters": [
                    {"type": "string", "description": "authorization code", "name": "code", "in": "query", "required": true},
                    {"type": "string", "description": "state issued by /api/oauth/google", "name": "state", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["misc"],
                "summary": "Service status and enabled features",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["misc"],
                "summary": "Accepted image model selectors",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.Response"}}}
            }
        },
        "/api/monitor/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["misc"],
                "summary": "Process health",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        }
    },
    "definitions": {
        "controller.CreateImageRequest": {
            "type": "object",
            "required": ["image_url"],
            "properties": {
                "image_url": {"type": "string"},
                "model": {"type": "string", "maxLength": 64},
                "prompt": {"type": "string"}
            }
        },
        "controller.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "controller.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "controller.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "controller.UpdateImageRequest": {
            "type": "object",
            "properties": {
                "model": {"type": "string", "maxLength": 64},
                "prompt": {"type": "string"}
            }
        },
        "model.GenerationRequest": {
            "type": "object",
            "properties": {
                "model": {"type": "string", "enum": ["google-imagen", "ideogram"]},
                "prompt": {"type": "string"}
            }
        },
        "model.GenerationResult": {
            "type": "object",
            "properties": {"imageUrl": {"type": "string"}}
        },
        "model.TranscriptionRequest": {
            "type": "object",
            "properties": {"audio": {"type": "string"}}
        },
        "model.User": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "display_name": {"type": "string", "maxLength": 20},
                "email": {"type": "string", "maxLength": 50},
                "password": {"type": "string", "maxLength": 20, "minLength": 8},
                "username": {"type": "string", "maxLength": 30}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PixelForge API",
	Description:      "Image generation relay, transcription pass-through and generation records.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
