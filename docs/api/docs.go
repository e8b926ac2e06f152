// Package api holds the OpenAPI description served at /swagger.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/localnerve/jam-build-breezemeta",
            "email": "info@localnerve.com"
        },
        "license": {
            "name": "AGPL-3.0",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/breeze": {
            "get": {
                "description": "List the model contexts that serve metadata",
                "produces": ["application/json"],
                "tags": ["Metadata"],
                "summary": "List metadata contexts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/utils.ContextsResponseStruct"}
                    }
                }
            }
        },
        "/breeze/{context}/Metadata": {
            "get": {
                "description": "Build the Breeze client metadata document for a model context",
                "produces": ["application/json"],
                "tags": ["Metadata"],
                "summary": "Get Breeze metadata",
                "parameters": [
                    {"type": "string", "description": "Metadata context", "name": "context", "in": "path", "required": true},
                    {"type": "string", "description": "Client metadata version", "name": "X-Metadata-Version", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Ping the database and build every metadata context",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.HealthCheckResult"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/services.HealthCheckResult"}}
                }
            }
        }
    },
    "definitions": {
        "services.HealthCheckResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "database": {"type": "string"},
                "contexts": {"type": "object", "additionalProperties": {"type": "string"}},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "error": {"type": "string"}
            }
        },
        "utils.ContextsResponseStruct": {
            "type": "object",
            "properties": {
                "metadataVersion": {"type": "string"},
                "contexts": {"type": "array", "items": {"type": "string"}}
            }
        },
        "utils.ErrorResponseStruct": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "ok": {"type": "boolean"},
                "timestamp": {"type": "string"},
                "url": {"type": "string"},
                "type": {"type": "string"},
                "versionError": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Breeze Metadata API",
	Description:      "Breeze client metadata for gorm models",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
