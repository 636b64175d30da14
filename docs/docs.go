// Package docs holds the Swagger 2.0 document served at /swagger/. It mirrors
// the annotations on the handlers in internal/api/handler.
package docs

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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"], "summary": "Register a new user",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/authEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/errorEnvelope"}},
                    "409": {"description": "Email taken", "schema": {"$ref": "#/definitions/errorEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Login",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/errorEnvelope"}}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "tags": ["auth"], "summary": "Current user", "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorEnvelope"}}
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": ["tasks"], "summary": "List tasks", "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "status", "type": "string", "enum": ["pending", "in-progress", "done"]},
                    {"in": "query", "name": "priority", "type": "string", "enum": ["low", "medium", "high"]},
                    {"in": "query", "name": "sortBy", "type": "string", "enum": ["createdAt", "updatedAt", "title", "status", "priority", "dueDate"]},
                    {"in": "query", "name": "sortOrder", "type": "string", "enum": ["asc", "desc"]},
                    {"in": "query", "name": "page", "type": "integer", "default": 1},
                    {"in": "query", "name": "limit", "type": "integer", "default": 10, "maximum": 100}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskListEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/errorEnvelope"}}
                }
            },
            "post": {
                "tags": ["tasks"], "summary": "Create a task", "security": [{"BearerAuth": []}],
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/taskInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/taskEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/errorEnvelope"}}
                }
            }
        },
        "/tasks/insights": {
            "get": {
                "tags": ["tasks"], "summary": "Task insights", "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": ["tasks"], "summary": "Get a task", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/errorEnvelope"}}
                }
            },
            "put": {
                "tags": ["tasks"], "summary": "Update a task",
                "description": "Absent keys are untouched, null clears optional fields, extras merge field by field.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/taskInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/errorEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/errorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["tasks"], "summary": "Delete a task", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/errorEnvelope"}}
                }
            }
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {
                "tags": ["health"], "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}
            }
        }
    },
    "definitions": {
        "registerRequest": {
            "type": "object", "required": ["email", "password", "name"],
            "properties": {
                "email": {"type": "string", "example": "sarah.johnson@email.com"},
                "password": {"type": "string", "minLength": 6},
                "name": {"type": "string", "minLength": 2, "maxLength": 50}
            }
        },
        "loginRequest": {
            "type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "user": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}, "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "authEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}, "message": {"type": "string"},
                "data": {"type": "object", "properties": {"user": {"$ref": "#/definitions/user"}, "token": {"type": "string"}}}
            }
        },
        "extras": {
            "type": "object",
            "properties": {
                "tags": {"type": "array", "items": {"type": "string", "maxLength": 30}},
                "dueDate": {"type": "string", "format": "date-time"},
                "priority": {"type": "string", "enum": ["low", "medium", "high"]},
                "estimatedHours": {"type": "number", "minimum": 0},
                "actualHours": {"type": "number", "minimum": 0},
                "notes": {"type": "string", "maxLength": 500}
            }
        },
        "taskInput": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "description": {"type": "string", "maxLength": 1000},
                "status": {"type": "string", "enum": ["pending", "in-progress", "done"]},
                "extras": {"$ref": "#/definitions/extras"}
            }
        },
        "task": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"}, "userId": {"type": "string"},
                "title": {"type": "string"}, "description": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "in-progress", "done"]},
                "extras": {"$ref": "#/definitions/extras"},
                "createdAt": {"type": "string", "format": "date-time"}, "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "taskEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}, "message": {"type": "string"},
                "data": {"type": "object", "properties": {"task": {"$ref": "#/definitions/task"}}}
            }
        },
        "taskListEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {
                    "type": "object",
                    "properties": {
                        "tasks": {"type": "array", "items": {"$ref": "#/definitions/task"}},
                        "pagination": {
                            "type": "object",
                            "properties": {
                                "page": {"type": "integer"}, "limit": {"type": "integer"},
                                "total": {"type": "integer"}, "pages": {"type": "integer"}
                            }
                        }
                    }
                }
            }
        },
        "errorEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}, "message": {"type": "string"},
                "errors": {
                    "type": "array",
                    "items": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Task Manager API",
	Description:      "Personal task management with per-user insights.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
