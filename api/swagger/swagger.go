package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable CP-SAT Engine API",
        "description": "University timetable constraint-programming engine: generates and validates course timetables.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/generate": {
            "post": {
                "summary": "Generate a timetable",
                "description": "Runs the constraint engine over the submitted entities and returns the best timetable found within the time budget.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "TimetableResult, success flag indicates solver outcome"
                    },
                    "401": {
                        "description": "missing or invalid X-API-Key"
                    },
                    "422": {
                        "description": "malformed payload"
                    }
                }
            }
        },
        "/validate": {
            "post": {
                "summary": "Validate a timetable",
                "description": "Re-checks a candidate assignment list against the hard constraints without invoking the solver.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "ValidationResult"
                    },
                    "401": {
                        "description": "missing or invalid X-API-Key"
                    },
                    "422": {
                        "description": "malformed payload"
                    },
                    "500": {
                        "description": "internal validation failure"
                    }
                }
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
