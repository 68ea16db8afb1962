// Package docs registers the OpenAPI 2.0 description served under /api/docs.
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
                "tags": ["system"],
                "summary": "Liveness, database status and documentation links",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}}}
            }
        },
        "/products": {
            "get": {
                "tags": ["products"],
                "summary": "List active products",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query", "enum": ["smartphones", "laptops", "tablets", "audio", "wearables", "gaming", "tv", "accessories"]},
                    {"type": "string", "name": "brand", "in": "query"},
                    {"type": "number", "name": "min_price", "in": "query"},
                    {"type": "number", "name": "max_price", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "boolean", "name": "featured", "in": "query"},
                    {"type": "boolean", "name": "offer", "in": "query"},
                    {"type": "boolean", "name": "best_seller", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query", "enum": ["created_at", "price", "title", "discount", "stock"]},
                    {"type": "string", "name": "order", "in": "query", "enum": ["asc", "desc"]},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}}, "400": {"description": "Bad filter", "schema": {"$ref": "#/definitions/Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Create a product (admin)",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Response"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Response"}}}
            }
        },
        "/products/featured": {"get": {"tags": ["products"], "summary": "Featured products", "responses": {"200": {"description": "OK"}}}},
        "/products/offers": {"get": {"tags": ["products"], "summary": "Products on offer", "responses": {"200": {"description": "OK"}}}},
        "/products/best-sellers": {"get": {"tags": ["products"], "summary": "Best sellers", "responses": {"200": {"description": "OK"}}}},
        "/products/search": {
            "get": {
                "tags": ["products"],
                "summary": "Case-insensitive search over title, description and brand",
                "parameters": [{"type": "string", "name": "q", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Missing query"}}
            }
        },
        "/products/brands": {"get": {"tags": ["products"], "summary": "Distinct brands of active products", "responses": {"200": {"description": "OK"}}}},
        "/products/{id}": {
            "get": {
                "tags": ["products"],
                "summary": "Get an active product",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Update whitelisted product fields (admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown or invalid field"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Deactivate a product (admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/categories": {"get": {"tags": ["categories"], "summary": "Categories with active product counts", "responses": {"200": {"description": "OK"}}}},
        "/categories/{slug}": {"get": {"tags": ["categories"], "summary": "One category", "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}},
        "/categories/{slug}/products": {"get": {"tags": ["categories"], "summary": "Products in a category", "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}},
        "/cart": {
            "get": {"tags": ["cart"], "summary": "Cart summary for the current owner", "parameters": [{"$ref": "#/parameters/SessionID"}], "responses": {"200": {"description": "OK", "headers": {"x-session-id": {"type": "string"}}}}},
            "post": {"tags": ["cart"], "summary": "Add a product", "parameters": [{"$ref": "#/parameters/SessionID"}], "responses": {"201": {"description": "Created"}, "400": {"description": "Insufficient stock"}, "404": {"description": "Product not found"}}},
            "delete": {"tags": ["cart"], "summary": "Clear the cart", "parameters": [{"$ref": "#/parameters/SessionID"}], "responses": {"200": {"description": "OK"}}}
        },
        "/cart/count": {"get": {"tags": ["cart"], "summary": "Line and quantity counts", "parameters": [{"$ref": "#/parameters/SessionID"}], "responses": {"200": {"description": "OK"}}}},
        "/cart/{id}": {
            "put": {"tags": ["cart"], "summary": "Set quantity; zero removes", "parameters": [{"$ref": "#/parameters/SessionID"}, {"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["cart"], "summary": "Remove a line item", "parameters": [{"$ref": "#/parameters/SessionID"}, {"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register and receive a token", "parameters": [{"$ref": "#/parameters/SessionID"}], "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input"}, "409": {"description": "Email taken"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Log in and receive a token", "parameters": [{"$ref": "#/parameters/SessionID"}], "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}, "429": {"description": "Too many attempts"}}}},
        "/auth/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Acknowledge logout", "responses": {"200": {"description": "OK"}}}},
        "/auth/verify": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Check a token and return the user", "responses": {"200": {"description": "OK"}, "401": {"description": "Missing token"}, "403": {"description": "Invalid token"}}}},
        "/auth/profile": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current profile", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Update first_name, last_name or phone", "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid input"}}}
        },
        "/auth/change-password": {"put": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Change password", "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid input"}}}},
        "/auth/account": {"delete": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Deactivate the account", "responses": {"200": {"description": "OK"}, "400": {"description": "Incorrect password"}}}}
    },
    "parameters": {
        "SessionID": {"type": "string", "name": "x-session-id", "in": "header", "description": "Anonymous cart session"}
    },
    "definitions": {
        "Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "message": {"type": "string"},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Bearer <JWT>", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "Products, categories, session-aware carts and authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
