package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Agora Academic Calendar API",
        "description": "Session and term lifecycle, student migration and timetable administration",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Token issuance"},
        {"name": "Calendar", "description": "Session and term lifecycle"},
        {"name": "Migration", "description": "Student promotion and carry-over"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schools/{school}/sessions": {
            "get": {
                "tags": ["Calendar"],
                "summary": "List sessions with terms",
                "parameters": [
                    {"name": "school", "in": "path", "required": true, "type": "string"},
                    {"name": "school_type", "in": "query", "type": "string", "enum": ["PRIMARY", "SECONDARY", "TERTIARY"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Calendar"],
                "summary": "Initialize a draft session",
                "parameters": [
                    {"name": "school", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InitializeSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schools/{school}/sessions/active": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Get the active session",
                "parameters": [
                    {"name": "school", "in": "path", "required": true, "type": "string"},
                    {"name": "school_type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schools/{school}/sessions/end": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Complete the active session and all its terms",
                "parameters": [
                    {"name": "school", "in": "path", "required": true, "type": "string"},
                    {"name": "school_type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schools/{school}/sessions/{sessionId}/terms": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Add a draft term to a session",
                "parameters": [
                    {"name": "school", "in": "path", "required": true, "type": "string"},
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTermRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schools/{school}/terms/active": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Get the active term",
                "parameters": [
                    {"name": "school", "in": "path", "required": true, "type": "string"},
                    {"name": "school_type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schools/{school}/terms/start": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Start a new session or term",
                "parameters": [
                    {"name": "school", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StartTermRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schools/{school}/terms/end": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Complete the active term",
                "parameters": [
                    {"name": "school", "in": "path", "required": true, "type": "string"},
                    {"name": "school_type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schools/{school}/terms/{termId}/reactivate": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Reactivate a completed term",
                "parameters": [
                    {"name": "school", "in": "path", "required": true, "type": "string"},
                    {"name": "termId", "in": "path", "required": true, "type": "string"},
                    {"name": "school_type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schools/{school}/migrations": {
            "post": {
                "tags": ["Migration"],
                "summary": "Migrate students into a term",
                "parameters": [
                    {"name": "school", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MigrateStudentsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "InitializeSessionRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "start_date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"},
                "school_type": {"type": "string", "enum": ["PRIMARY", "SECONDARY", "TERTIARY"]}
            },
            "required": ["name", "start_date", "end_date"]
        },
        "CreateTermRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "number": {"type": "integer"},
                "start_date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"},
                "half_term_start": {"type": "string", "format": "date-time"},
                "half_term_end": {"type": "string", "format": "date-time"}
            },
            "required": ["name", "number", "start_date", "end_date"]
        },
        "StartTermRequest": {
            "type": "object",
            "properties": {
                "intent": {"type": "string", "enum": ["NEW_SESSION", "NEW_TERM"]},
                "name": {"type": "string"},
                "start_date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"},
                "school_type": {"type": "string"},
                "term_id": {"type": "string"}
            },
            "required": ["intent"]
        },
        "MigrateStudentsRequest": {
            "type": "object",
            "properties": {
                "term_id": {"type": "string"},
                "carry_over": {"type": "boolean"},
                "source_term_id": {"type": "string"},
                "school_type": {"type": "string"}
            },
            "required": ["term_id"]
        },
        "AcademicSession": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "school_id": {"type": "string"},
                "name": {"type": "string"},
                "school_type": {"type": "string"},
                "start_date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["DRAFT", "ACTIVE", "COMPLETED", "ARCHIVED"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "Term": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "session_id": {"type": "string"},
                "school_id": {"type": "string"},
                "name": {"type": "string"},
                "number": {"type": "integer"},
                "school_type": {"type": "string"},
                "start_date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["DRAFT", "ACTIVE", "COMPLETED", "ARCHIVED"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
