// Package docs registers the OpenAPI description of the REST API with swag.
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
    "security": [{"BearerAuth": []}],
    "paths": {
        "/ascomp-reports": {
            "get": {"tags": ["ascomp-reports"], "summary": "List ASCOMP reports", "produces": ["application/json"],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["ascomp-reports"], "summary": "Submit a checklist (named or positional form state)",
                "consumes": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/ascomp-reports/{id}": {
            "get": {"tags": ["ascomp-reports"], "summary": "Get one report",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["ascomp-reports"], "summary": "Delete a report",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}}
        },
        "/ascomp-reports/{id}/pdf": {
            "get": {"tags": ["ascomp-reports"], "summary": "Render the report as PDF", "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "renderer", "in": "query", "type": "string", "enum": ["direct", "browser"]},
                    {"name": "archive", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "PDF"}}}
        },
        "/ascomp-reports/{id}/docx": {
            "post": {"tags": ["ascomp-reports"], "summary": "Fill a Word template with the report", "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "template", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {"200": {"description": "DOCX"}}}
        },
        "/ascomp-reports/tokens": {
            "get": {"tags": ["ascomp-reports"], "summary": "List template tokens", "responses": {"200": {"description": "OK"}}}
        },
        "/ascomp-reports/import/template": {
            "get": {"tags": ["ascomp-reports"], "summary": "Download the CSV import header", "produces": ["text/csv"],
                "responses": {"200": {"description": "CSV"}}}
        },
        "/ascomp-reports/import": {
            "post": {"tags": ["ascomp-reports"], "summary": "Import reports from CSV or XLSX", "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "dryRun", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "Import result"}}}
        },
        "/rmas": {
            "get": {"tags": ["rmas"], "summary": "List RMAs", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["rmas"], "summary": "Create an RMA", "responses": {"201": {"description": "Created"}}}
        },
        "/rmas/batch": {
            "post": {"tags": ["rmas"], "summary": "Create many RMAs", "responses": {"200": {"description": "OK"}}}
        },
        "/rmas/{id}": {
            "get": {"tags": ["rmas"], "summary": "Get an RMA", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["rmas"], "summary": "Update an RMA", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["rmas"], "summary": "Delete an RMA", "responses": {"204": {"description": "No Content"}}}
        },
        "/dtrs": {
            "get": {"tags": ["dtrs"], "summary": "List DTRs", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["dtrs"], "summary": "Create a DTR", "responses": {"201": {"description": "Created"}}}
        },
        "/dtrs/{id}": {
            "get": {"tags": ["dtrs"], "summary": "Get a DTR", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["dtrs"], "summary": "Update a DTR", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["dtrs"], "summary": "Delete a DTR", "responses": {"204": {"description": "No Content"}}}
        },
        "/dtrs/{id}/shift-to-rma": {
            "post": {"tags": ["dtrs"], "summary": "Open an RMA from a DTR", "responses": {"201": {"description": "Created"}, "409": {"description": "Already shifted"}}}
        },
        "/sites": {
            "get": {"tags": ["sites"], "summary": "List sites", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["sites"], "summary": "Create a site", "responses": {"201": {"description": "Created"}}}
        },
        "/sites/nearby": {
            "get": {"tags": ["sites"], "summary": "Sites within a radius",
                "parameters": [
                    {"name": "lat", "in": "query", "required": true, "type": "number"},
                    {"name": "lng", "in": "query", "required": true, "type": "number"},
                    {"name": "radiusKm", "in": "query", "type": "number"}
                ],
                "responses": {"200": {"description": "OK"}}}
        },
        "/sites/in-region": {
            "post": {"tags": ["sites"], "summary": "Sites inside a polygon", "responses": {"200": {"description": "OK"}}}
        },
        "/sites/{id}": {
            "get": {"tags": ["sites"], "summary": "Get a site", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["sites"], "summary": "Update a site", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["sites"], "summary": "Delete a site", "responses": {"204": {"description": "No Content"}}}
        },
        "/projectors": {
            "get": {"tags": ["projectors"], "summary": "List projectors", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["projectors"], "summary": "Create a projector", "responses": {"201": {"description": "Created"}}}
        },
        "/projectors/{id}": {
            "get": {"tags": ["projectors"], "summary": "Get a projector", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["projectors"], "summary": "Update a projector", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["projectors"], "summary": "Delete a projector", "responses": {"204": {"description": "No Content"}}}
        },
        "/projectors/{serial}/history": {
            "get": {"tags": ["projectors"], "summary": "RMAs, DTRs and reports for a serial number", "responses": {"200": {"description": "OK"}}}
        },
        "/analytics/rma": {
            "get": {"tags": ["analytics"], "summary": "RMA dashboard",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "siteId", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}}
        },
        "/analytics/rma/export": {
            "get": {"tags": ["analytics"], "summary": "RMA dashboard as XLSX", "responses": {"200": {"description": "XLSX"}}}
        },
        "/files/upload": {
            "post": {"tags": ["files"], "summary": "Upload an attachment", "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "rmaId", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ASCOMP Service API",
	Description:      "Projector preventive-maintenance reports, RMAs, DTRs, sites and projectors.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
