// Package docs registra la especificación OpenAPI servida en /swagger.
// Mantenida a mano a partir de las anotaciones godoc de los handlers.
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
    "paths": {
        "/chat": {
            "post": {
                "tags": ["assistant"],
                "summary": "Enviar mensaje al asistente",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Message is required"},
                    "429": {"description": "Rate limit exceeded"},
                    "500": {"description": "Assistant unavailable"}
                }
            }
        },
        "/pets": {
            "get": {
                "tags": ["pets"],
                "summary": "Listar mascotas del usuario",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["pets"],
                "summary": "Crear mascota",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Plan limit reached"}
                }
            }
        },
        "/pets/{petID}/entries": {
            "get": {
                "tags": ["timeline"],
                "summary": "Listar entradas del historial",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["timeline"],
                "summary": "Crear entrada del historial",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/pets/{petID}/reminders": {
            "get": {
                "tags": ["reminders"],
                "summary": "Listar recordatorios",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["reminders"],
                "summary": "Crear recordatorio",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/me/profile": {
            "get": {
                "tags": ["profiles"],
                "summary": "Perfil del usuario (lazy create)",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "PetVault API",
	Description:      "Historial de salud de mascotas con asistente de chat.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
