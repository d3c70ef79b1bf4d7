// Package docs registers the OpenAPI description served under /swagger/.
// It mirrors the swag annotations on the API handlers and is kept by hand.
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
        "/admin/reset": {
            "post": {
                "description": "Resets (drop and recreate empty) or removes (drop only) one table or all of them.",
                "consumes": ["application/json"],
                "tags": ["Admin"],
                "summary": "Reset storage tables",
                "parameters": [
                    {"description": "What to reset", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ResetRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/catalog/sync": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Synchronize the catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.Report"}},
                    "409": {"description": "no manifest configured", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/practice/random": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Practice"],
                "summary": "Weighted random question",
                "parameters": [
                    {"type": "string", "description": "Restrict the draw to one subject", "name": "subject_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.QuestionResponse"}},
                    "204": {"description": "no questions"}
                }
            }
        },
        "/sessions": {
            "post": {
                "description": "Normal mode resumes from saved progress; wrong mode reviews questions last answered incorrectly.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Start a session",
                "parameters": [
                    {"description": "Session settings", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/sessions/{sessionID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Get a session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "End a session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/sessions/{sessionID}/actions/{action}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Navigate a session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true},
                    {"type": "string", "description": "advance, continue, retry, skip-next, skip-previous or previous", "name": "action", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/sessions/{sessionID}/answers": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Submit an answer",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true},
                    {"description": "Answer", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SubmitAnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "stage summary or completed session", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/sessions/{sessionID}/stage-report": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Stage report",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.StageReport"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/subjects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Subjects"],
                "summary": "List subjects",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.SubjectResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/subjects/{subjectID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Subjects"],
                "summary": "Get a subject",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SubjectResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "description": "Deletes the subject, its questions, answers and progress in one transaction.",
                "tags": ["Subjects"],
                "summary": "Delete a subject",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/subjects/{subjectID}/export": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Subjects"],
                "summary": "Export a subject",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.QuestionFile"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/subjects/{subjectID}/import": {
            "post": {
                "description": "Full replace: every question must be valid or nothing is written.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Subjects"],
                "summary": "Import a question file",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true},
                    {"description": "Question file", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.QuestionFile"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.SubjectResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/subjects/{subjectID}/progress": {
            "get": {
                "description": "All fields are zero when the subject was never practiced.",
                "produces": ["application/json"],
                "tags": ["Progress"],
                "summary": "Subject progress",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ProgressResponse"}}
                }
            },
            "delete": {
                "tags": ["Progress"],
                "summary": "Reset progress",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/subjects/{subjectID}/questions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Questions"],
                "summary": "List questions",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.QuestionResponse"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/subjects/{subjectID}/questions/{questionID}/tags": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["Questions"],
                "summary": "Update question tags",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true},
                    {"type": "integer", "description": "Question ID", "name": "questionID", "in": "path", "required": true},
                    {"description": "New tags", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.UpdateTagsRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/subjects/{subjectID}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Subject statistics",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SubjectReport"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/subjects/{subjectID}/wrong": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Wrong-answered questions",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.QuestionResponse"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "api.CreateSessionRequest": {
            "type": "object",
            "required": ["subject_id"],
            "properties": {
                "mode": {"type": "string", "example": "normal"},
                "stage_size": {"type": "integer", "example": 10},
                "subject_id": {"type": "string", "example": "go-basics"}
            }
        },
        "api.ProgressResponse": {
            "type": "object",
            "properties": {
                "last_index": {"type": "integer", "example": 4},
                "percent": {"type": "number", "example": 0.5},
                "subject_id": {"type": "string", "example": "go-basics"},
                "total": {"type": "integer", "example": 10}
            }
        },
        "api.QuestionResponse": {
            "type": "object",
            "properties": {
                "accepted_answers": {"type": "array", "items": {"type": "string"}},
                "answer_explanation": {"type": "string"},
                "choices": {"type": "array", "items": {"type": "object", "properties": {"id": {"type": "string"}, "text": {"type": "string"}}}},
                "id": {"type": "integer", "example": 1},
                "question_explanation": {"type": "array", "items": {"type": "string"}},
                "question_text": {"type": "string", "example": "What is a goroutine?"},
                "subject_id": {"type": "string", "example": "go-basics"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "type": {"type": "string", "example": "objective"},
                "weight": {"type": "number", "example": 1}
            }
        },
        "api.ResetRequest": {
            "type": "object",
            "required": ["target"],
            "properties": {
                "drop": {"type": "boolean"},
                "target": {"type": "string", "enum": ["questions", "subjects", "answers", "all"], "example": "questions"}
            }
        },
        "api.SessionResponse": {
            "type": "object",
            "properties": {
                "question": {"$ref": "#/definitions/api.QuestionResponse"},
                "state": {"type": "object"}
            }
        },
        "api.SubjectResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "go-basics"},
                "num_questions": {"type": "integer", "example": 25},
                "title": {"type": "string", "example": "Go Basics"}
            }
        },
        "api.SubmitAnswerRequest": {
            "type": "object",
            "properties": {
                "answer": {"type": "string", "example": "A lightweight thread"},
                "correct": {"type": "boolean"}
            }
        },
        "api.UpdateTagsRequest": {
            "type": "object",
            "properties": {
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "catalog.QuestionFile": {
            "type": "object",
            "required": ["questions"],
            "properties": {
                "metadata": {"type": "object"},
                "questions": {"type": "array", "items": {"type": "object"}}
            }
        },
        "catalog.Report": {
            "type": "object",
            "properties": {
                "added": {"type": "array", "items": {"type": "string"}},
                "removed": {"type": "array", "items": {"type": "string"}},
                "skipped": {"type": "integer"},
                "unchanged": {"type": "array", "items": {"type": "string"}}
            }
        },
        "service.StageReport": {
            "type": "object",
            "properties": {
                "answered": {"type": "integer"},
                "correct": {"type": "integer"},
                "question_ids": {"type": "array", "items": {"type": "integer"}},
                "session_id": {"type": "string"},
                "stage": {"type": "integer"},
                "subject_id": {"type": "string"}
            }
        },
        "service.SubjectReport": {
            "type": "object",
            "properties": {
                "accuracy": {"type": "number"},
                "answered_questions": {"type": "integer"},
                "correct_attempts": {"type": "integer"},
                "mastery": {"type": "integer"},
                "subject_id": {"type": "string"},
                "title": {"type": "string"},
                "total_attempts": {"type": "integer"},
                "total_questions": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Quizcore API",
	Description:      "Local-first quiz engine: subject catalogs, staged practice sessions, answer statistics and weighted review.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
