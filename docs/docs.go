// Package docs contiene el documento OpenAPI servido en /swagger.
// Se mantiene a mano con la forma que produce swag init; cambiarlo junto con
// las anotaciones de twin/handler.go y router/router.go.
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
        "/api/twin/patients": {
            "get": {
                "description": "Devuelve todos los pacientes de la tabla patients (id, name, age, ward, is_mdr_known) en el orden nativo del almacenamiento. Cada request hace una única lectura; sin caché ni paginación.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "twin"
                ],
                "summary": "Listar pacientes del gemelo digital",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/twin.patientResponse"
                            }
                        }
                    },
                    "500": {
                        "description": "error de consulta",
                        "schema": {
                            "$ref": "#/definitions/twin.errorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Responde 200 mientras el proceso esté vivo. No consulta la base de datos.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Liveness",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/router.healthResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "router.healthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "example": "ok"
                }
            }
        },
        "twin.errorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "twin.patientResponse": {
            "type": "object",
            "properties": {
                "age": {
                    "type": "integer"
                },
                "id": {
                    "description": "Número JSON si la columna es INTEGER, string JSON si es TEXT. Sin type: puede ser cualquiera de los dos."
                },
                "is_mdr_known": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string"
                },
                "ward": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MDR Twin Gateway API",
	Description:      "API de solo lectura sobre la base de contact tracing MDR (vista de gemelo digital).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
