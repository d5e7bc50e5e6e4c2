package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable API",
        "description": "Course section timetable assignment and validation service",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetable", "description": "Grid state and manual placement"},
        {"name": "Sections", "description": "Course section listing and duration splitting"},
        {"name": "Generator", "description": "Automatic schedule generation"},
        {"name": "Export", "description": "Schedule export rendering"},
        {"name": "Notifications", "description": "Transient engine notices"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/schedules/{scheduleId}/grid": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Current grid snapshot",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/{scheduleId}/sections": {
            "get": {
                "tags": ["Sections"],
                "summary": "List course sections",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "integer"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "instructor", "in": "query", "type": "string"},
                    {"name": "online", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/{scheduleId}/sections/{sectionId}/split": {
            "post": {
                "tags": ["Sections"],
                "summary": "Split a section into multiple meeting blocks",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "integer"},
                    {"name": "sectionId", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SplitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/{scheduleId}/placements": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Place a course section on the grid",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlaceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Placement rejected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/{scheduleId}/placements/preview": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Validate a placement without committing it",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlaceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Placement rejected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/{scheduleId}/placements/{courseId}": {
            "delete": {
                "tags": ["Timetable"],
                "summary": "Remove a placed course section",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "integer"},
                    {"name": "courseId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/{scheduleId}/save": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Persist the current grid",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/{scheduleId}/generate": {
            "post": {
                "tags": ["Generator"],
                "summary": "Run the automatic schedule generator",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Generator unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/{scheduleId}/export": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the schedule as CSV or PDF",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List active notifications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/notifications/{id}": {
            "delete": {
                "tags": ["Notifications"],
                "summary": "Dismiss a notification",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "PlaceRequest": {
            "type": "object",
            "properties": {
                "course_id": {"type": "integer"},
                "day": {"type": "string"},
                "classroom_id": {"type": "integer"},
                "slot_key": {"type": "string"}
            },
            "required": ["course_id", "day", "classroom_id", "slot_key"]
        },
        "SplitRequest": {
            "type": "object",
            "properties": {
                "durations": {
                    "type": "array",
                    "items": {"type": "number"}
                }
            },
            "required": ["durations"]
        },
        "GridCell": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "classroom_id": {"type": "integer"},
                "slot_key": {"type": "string"},
                "course_id": {"type": "integer"},
                "course_code": {"type": "string"},
                "course_title": {"type": "string"},
                "instructor": {"type": "string"},
                "color": {"type": "string"},
                "is_start": {"type": "boolean"},
                "is_middle": {"type": "boolean"},
                "is_end": {"type": "boolean"},
                "colspan": {"type": "integer"}
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
