// Package docs registers the OpenAPI description served under /swagger.
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
        "/health": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Authenticate user and return JWT token",
                "parameters": [
                    {
                        "description": "email and password",
                        "name": "credentials",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.CredentialsRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LoginResult"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ValidationErrorsResult"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Revoke the current token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResult"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard statistics for the signed-in user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DashboardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "500": {"description": "failed to load dashboard", "schema": {"type": "string"}}
                }
            }
        },
        "/dashboard/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["dashboard"],
                "summary": "Download the dashboard statistics as a spreadsheet",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "500": {"description": "failed to load dashboard", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CredentialsRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.LoginResult": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "handlers.MessageResult": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handlers.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "handlers.ValidationErrorsResult": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"$ref": "#/definitions/handlers.ValidationError"}}
            }
        },
        "handlers.DashboardResponse": {
            "type": "object",
            "properties": {
                "user": {"type": "string"},
                "pdv_name": {"type": "string"},
                "stats": {"$ref": "#/definitions/dashboard.Snapshot"}
            }
        },
        "dashboard.Snapshot": {
            "type": "object",
            "properties": {
                "total_sales": {"type": "integer"},
                "total_products": {"type": "integer"},
                "total_customers": {"type": "integer"},
                "total_revenue": {"type": "string", "example": "425.75"},
                "recent_sales": {"type": "array", "items": {"$ref": "#/definitions/models.Sale"}},
                "low_stock_products": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}}
            }
        },
        "models.Sale": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "sale_number": {"type": "string"},
                "total_amount": {"type": "string"},
                "discount_amount": {"type": "string"},
                "final_amount": {"type": "string"},
                "payment_method": {"type": "string"},
                "status": {"type": "string"},
                "customer_name": {"type": "string"},
                "customer_phone": {"type": "string"},
                "notes": {"type": "string"},
                "customer_id": {"type": "string", "format": "uuid"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "models.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "string"},
                "stock_quantity": {"type": "integer"},
                "category_id": {"type": "string", "format": "uuid"},
                "barcode": {"type": "string"},
                "image_url": {"type": "string"},
                "is_active": {"type": "boolean"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PDV Dashboard API",
	Description:      "Point-of-sale back-office statistics: totals, revenue, recent sales and low-stock products.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
