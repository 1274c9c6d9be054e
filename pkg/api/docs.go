package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Get the health status of the API",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/form-fields": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Read the form field table from the spreadsheet",
                "produces": ["application/json"],
                "tags": ["form-fields"],
                "summary": "List form fields",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.FormFieldsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.MessageResponse"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Clear the form field table and write the given fields",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["form-fields"],
                "summary": "Replace form fields",
                "parameters": [
                    {
                        "description": "Form fields",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.FormFieldsResponse"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.MessageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.FormFieldsResponse": {
            "type": "object",
            "properties": {
                "formFields": {"type": "array", "items": {"$ref": "#/definitions/codec.FieldRecord"}}
            }
        },
        "api.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "codec.FieldRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "label": {"type": "string"},
                "type": {"type": "string", "enum": ["text", "textarea", "select", "date", "url", "checkbox"]},
                "required": {"type": "boolean"},
                "options": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "fieldsheet API",
	Description:      "Reads and replaces the form field table stored in a spreadsheet.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
