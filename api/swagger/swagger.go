package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "OBE Attainment API",
        "description": "Outcome-based education attainment computation service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Attainment", "description": "CLO attainment reports"},
        {"name": "PLO", "description": "Program-level attainment rollups"},
        {"name": "Results", "description": "Weighted grade reports and drill-downs"},
        {"name": "Directory", "description": "Outcome and section directory"},
        {"name": "Exports", "description": "CSV and PDF downloads"}
    ],
    "paths": {
        "/sections/{id}/attainment": {
            "get": {
                "tags": ["Attainment"],
                "summary": "Per-CLO cohort averages for a section",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"},
                    "422": {"description": "Assessment breakdown not configured"}
                }
            }
        },
        "/sections/{id}/attainment/students/{studentId}": {
            "get": {
                "tags": ["Attainment"],
                "summary": "Per-CLO attainment for one student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"},
                    "404": {"description": "Section or enrollment not found"},
                    "422": {"description": "Assessment breakdown not configured"}
                }
            }
        },
        "/sections/{id}/results/students/{studentId}": {
            "get": {
                "tags": ["Results"],
                "summary": "Weighted final result for one student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"}
                }
            }
        },
        "/sections/{id}/results/overview": {
            "get": {
                "tags": ["Results"],
                "summary": "Section-level result overview",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"}
                }
            }
        },
        "/sections/{id}/results/types/{type}": {
            "get": {
                "tags": ["Results"],
                "summary": "Drill-down into one assessment type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "type", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"},
                    "400": {"description": "Unknown assessment type"}
                }
            }
        },
        "/sections/{id}/results/assessments/{assessmentId}": {
            "get": {
                "tags": ["Results"],
                "summary": "Drill-down into one assessment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "assessmentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"},
                    "404": {"description": "Assessment not in section"}
                }
            }
        },
        "/sections/{id}/exports/attainment": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the CLO attainment matrix",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/sections/{id}/exports/results": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the section result overview",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/plos/{id}/students/{studentId}": {
            "get": {
                "tags": ["PLO"],
                "summary": "Attainment of one PLO for one student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"},
                    "404": {"description": "PLO not found"}
                }
            }
        },
        "/programs/{id}/students/{studentId}/attainment": {
            "get": {
                "tags": ["PLO"],
                "summary": "Attainment across all PLOs of a program",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"},
                    "404": {"description": "Program not found"}
                }
            }
        },
        "/courses/{id}/clos": {
            "get": {
                "tags": ["Directory"],
                "summary": "Learning outcomes of a course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"}
                }
            }
        },
        "/programs/{id}/plos": {
            "get": {
                "tags": ["Directory"],
                "summary": "Learning outcomes of a program",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"}
                }
            }
        },
        "/faculty/sections": {
            "get": {
                "tags": ["Directory"],
                "summary": "Sections taught by the authenticated faculty member",
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        }
    },
    "definitions": {
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
