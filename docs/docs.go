// Package docs registers the OpenAPI document served under /v1/swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Log in", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/checkins": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["checkins"], "summary": "My check-ins with their reviews", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["checkins"], "summary": "Check in at a shop", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/checkins/{checkInID}": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["checkins"], "summary": "One of my check-ins", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/coffeeshops/nearby": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeshops"], "summary": "Coffee shops near a point", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/coffeeshops/seeded": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeshops"], "summary": "All registered shops", "responses": {"200": {"description": "OK"}}}},
        "/coffeeshops/mine": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeshops"], "summary": "Shops I own", "responses": {"200": {"description": "OK"}}}},
        "/coffeeshops/add": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeshops"], "summary": "Add a shop by hand", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/coffeeshops/{shopID}": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeshops"], "summary": "Shop by id", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/coffeeshops/{shopID}/reviews": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeshops"], "summary": "Reviews of a shop", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/coffeeshops/{shopID}/claim": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeshops"], "summary": "Claim a shop", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/coffeeshops/osm/{externalID}/reviews": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeshops"], "summary": "Reviews of a shop by external id", "responses": {"200": {"description": "OK"}}}},
        "/coffeeshops/osm/{externalID}/claim": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeshops"], "summary": "Claim a shop by external id", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/coffeeshops/osm/{externalID}/qr": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeshops"], "summary": "QR payload for a shop", "responses": {"200": {"description": "OK"}}}},
        "/reviews": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["reviews"], "summary": "My reviews", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["reviews"], "summary": "Review a product from a check-in", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/reviews/feed": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["reviews"], "summary": "Review feed", "responses": {"200": {"description": "OK"}}}},
        "/reviews/feed/grouped": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["reviews"], "summary": "Review feed grouped by shop", "responses": {"200": {"description": "OK"}}}},
        "/reviews/feed/stats": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["reviews"], "summary": "Feed statistics", "responses": {"200": {"description": "OK"}}}},
        "/menu": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["menu"], "summary": "Add a menu item", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}},
        "/menu/{itemID}": {"delete": {"security": [{"ApiKeyAuth": []}], "tags": ["menu"], "summary": "Delete a menu item", "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}},
        "/menu/shop/{shopID}": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["menu"], "summary": "Menu of a shop", "responses": {"200": {"description": "OK"}}}},
        "/menu/shop/osm/{externalID}": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["menu"], "summary": "Menu of a shop by external id", "responses": {"200": {"description": "OK"}}}},
        "/users/me": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["users"], "summary": "My profile", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["users"], "summary": "Update my profile", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/users/me/avatar": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["users"], "summary": "Upload profile picture", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/users/{userID}": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["users"], "summary": "A user's profile", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/coffeeinfo/roasts": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeinfo"], "summary": "Roast levels", "responses": {"200": {"description": "OK"}}}},
        "/coffeeinfo/roasts/{id}": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeinfo"], "summary": "Roast level", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/coffeeinfo/origins": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeinfo"], "summary": "Origins", "responses": {"200": {"description": "OK"}}}},
        "/coffeeinfo/origins/{id}": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["coffeeinfo"], "summary": "Origin", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/health": {"get": {"security": [{"BasicAuth": []}], "tags": ["ops"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"},
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Coffee Check-In API",
	Description:      "Check in at coffee shops, rate what you drank and follow the community feed.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
