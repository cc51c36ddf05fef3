// Package docs holds the harness's hand-maintained Swagger spec. The
// upstream teacher project generates this package with `swag init`; this
// harness's surface is small enough (four read-only routes) to maintain
// directly rather than wire a generator into the build.
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
        "/healthz": {
            "get": {
                "description": "Returns 200 if a coordinator session is attached, 503 otherwise",
                "produces": ["application/json"],
                "tags": ["harness"],
                "summary": "Report harness readiness",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/schema/clusters": {
            "get": {
                "description": "Returns every loaded ZCL cluster's name, code, and define",
                "produces": ["application/json"],
                "tags": ["schema"],
                "summary": "List loaded clusters",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/schema/clusters/{name}": {
            "get": {
                "description": "Returns a cluster's commands and attributes by normalised name",
                "produces": ["application/json"],
                "tags": ["schema"],
                "summary": "Describe a cluster",
                "parameters": [
                    {"type": "string", "description": "Cluster name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/state": {
            "get": {
                "description": "Returns the controller's last-observed network state and any persisted harness configuration",
                "produces": ["application/json"],
                "tags": ["harness"],
                "summary": "Report controller and persisted harness state",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger metadata, registered with the
// swaggo runtime below so gin-swagger can serve it without a generation
// step.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "ZCL Test Harness API",
	Description:      "Read-only inspection API over the loaded ZCL schema and coordinator state",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
