// Package docs holds the OpenAPI description served by gin-swagger in local mode.
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
        "/polls/": {
            "get": {
                "security": [{"SessionToken": []}],
                "description": "The most recently published questions, newest first",
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Latest questions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.QuestionResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.UnauthenticatedResponse"}}
                }
            }
        },
        "/polls/add/": {
            "get": {
                "security": [{"SessionToken": []}],
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "New question form",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.QuestionFormResponse"}}
                }
            },
            "post": {
                "security": [{"SessionToken": []}],
                "description": "Blank choices are ignored",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Create a question",
                "parameters": [{"description": "Question with choices", "name": "question", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.QuestionRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.QuestionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.UnauthenticatedResponse"}}
                }
            }
        },
        "/polls/search/": {
            "get": {
                "security": [{"SessionToken": []}],
                "description": "Case-insensitive substring match on the question text",
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Search questions",
                "parameters": [{"type": "string", "description": "Text to look for", "name": "keyword", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.QuestionResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.UnauthenticatedResponse"}}
                }
            }
        },
        "/polls/{id}/": {
            "get": {
                "security": [{"SessionToken": []}],
                "description": "Redirects to the results once the caller has voted",
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Question detail",
                "parameters": [{"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.QuestionResponse"}},
                    "303": {"description": "Already voted, see results"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.UnauthenticatedResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/polls/{id}/results/": {
            "get": {
                "security": [{"SessionToken": []}],
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Question results",
                "parameters": [{"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.QuestionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/polls/{id}/vote/": {
            "post": {
                "security": [{"SessionToken": []}],
                "description": "One vote per user per question. On success the caller is sent to the results.",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["voting"],
                "summary": "Cast a vote",
                "parameters": [
                    {"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true},
                    {"description": "Selected choice", "name": "vote", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.VoteRequest"}}
                ],
                "responses": {
                    "303": {"description": "Vote counted", "schema": {"$ref": "#/definitions/models.VoteResponse"}},
                    "400": {"description": "No choice selected", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Question or choice not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Already voted", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/polls/{id}/edit/": {
            "get": {
                "security": [{"SessionToken": []}],
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Edit question form",
                "parameters": [{"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.QuestionFormResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"SessionToken": []}],
                "description": "Replaces the text and every choice. Existing tallies and votes are discarded.",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Edit a question",
                "parameters": [
                    {"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true},
                    {"description": "New text and choices", "name": "question", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.QuestionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.QuestionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/polls/{id}/delete/": {
            "get": {
                "security": [{"SessionToken": []}],
                "description": "Read-only; nothing is deleted",
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Confirm question deletion",
                "parameters": [{"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DeleteConfirmationResponse"}}
                }
            },
            "post": {
                "security": [{"SessionToken": []}],
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Delete a question",
                "parameters": [{"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/polls/{id}/add_choice/": {
            "get": {
                "security": [{"SessionToken": []}],
                "produces": ["application/json"],
                "tags": ["choices"],
                "summary": "Add choice form",
                "parameters": [{"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.QuestionFormResponse"}}
                }
            },
            "post": {
                "security": [{"SessionToken": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["choices"],
                "summary": "Add a choice to a question",
                "parameters": [
                    {"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true},
                    {"description": "Choice text", "name": "choice", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ChoiceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.ChoiceResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/polls/choice/{id}/edit/": {
            "get": {
                "security": [{"SessionToken": []}],
                "produces": ["application/json"],
                "tags": ["choices"],
                "summary": "Edit choice form",
                "parameters": [{"type": "integer", "description": "Choice ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ChoiceResponse"}}
                }
            },
            "post": {
                "security": [{"SessionToken": []}],
                "description": "The tally is kept",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["choices"],
                "summary": "Rename a choice",
                "parameters": [
                    {"type": "integer", "description": "Choice ID", "name": "id", "in": "path", "required": true},
                    {"description": "Choice text", "name": "choice", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ChoiceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ChoiceResponse"}}
                }
            }
        },
        "/polls/choice/{id}/delete/": {
            "get": {
                "security": [{"SessionToken": []}],
                "description": "Read-only; nothing is deleted",
                "produces": ["application/json"],
                "tags": ["choices"],
                "summary": "Confirm choice deletion",
                "parameters": [{"type": "integer", "description": "Choice ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DeleteConfirmationResponse"}}
                }
            },
            "post": {
                "security": [{"SessionToken": []}],
                "produces": ["application/json"],
                "tags": ["choices"],
                "summary": "Delete a choice",
                "parameters": [{"type": "integer", "description": "Choice ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}}
                }
            }
        },
        "/polls/register/": {
            "post": {
                "description": "Registers the user and signs them in",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Create an account",
                "parameters": [{"description": "Username and password twice", "name": "account", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/polls/login/": {
            "post": {
                "description": "Repeated failures lock the username out for a while",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Log in",
                "parameters": [{"description": "Username and password", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.UnauthenticatedResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/polls/logout/": {
            "post": {
                "security": [{"SessionToken": []}],
                "description": "Revokes the current session token",
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ChoiceRequest": {"type": "object", "properties": {"choice_text": {"type": "string"}}},
        "models.ChoiceResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "question_id": {"type": "integer"}, "choice_text": {"type": "string"}, "votes": {"type": "integer"}}},
        "models.DeleteConfirmationResponse": {"type": "object", "properties": {"message": {"type": "string"}, "question": {"$ref": "#/definitions/models.QuestionResponse"}, "choice": {"$ref": "#/definitions/models.ChoiceResponse"}}},
        "models.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "field": {"type": "string"}}},
        "models.LoginRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "next": {"type": "string"}}},
        "models.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "models.QuestionFormResponse": {"type": "object", "properties": {"question": {"$ref": "#/definitions/models.QuestionResponse"}, "max_choices": {"type": "integer"}, "max_text_length": {"type": "integer"}}},
        "models.QuestionRequest": {"type": "object", "properties": {"question_text": {"type": "string"}, "choices": {"type": "array", "items": {"type": "string"}}}},
        "models.QuestionResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "question_text": {"type": "string"}, "pub_date": {"type": "string"}, "published_ago": {"type": "string"}, "recent": {"type": "boolean"}, "owner": {"type": "string"}, "choices": {"type": "array", "items": {"$ref": "#/definitions/models.ChoiceResponse"}}, "total_votes": {"type": "integer"}, "has_voted": {"type": "boolean"}}},
        "models.RegisterRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password1": {"type": "string"}, "password2": {"type": "string"}}},
        "models.SessionResponse": {"type": "object", "properties": {"user_id": {"type": "integer"}, "username": {"type": "string"}, "token": {"type": "string"}, "expires_at": {"type": "string"}, "next": {"type": "string"}}},
        "models.UnauthenticatedResponse": {"type": "object", "properties": {"error": {"type": "string"}, "login_url": {"type": "string"}}},
        "models.VoteRequest": {"type": "object", "properties": {"choice": {"type": "integer"}}},
        "models.VoteResponse": {"type": "object", "properties": {"question_id": {"type": "integer"}, "choice_id": {"type": "integer"}, "votes": {"type": "integer"}, "results_url": {"type": "string"}}}
    },
    "securityDefinitions": {
        "SessionToken": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Simple Polls API",
	Description:      "Polls with one vote per user per question, owner-managed questions and throttled logins",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
