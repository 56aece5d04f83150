package docs

import "github.com/swaggo/swag"

// @title           Taskflow API
// @version         1.0
// @description     API for personal task management: recurring tasks, dependencies, goals, templates and analytics
// @termsOfService  http://swagger.io/terms/

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration and login

// @tag.name Tasks
// @tag.description Task management operations

// @tag.name Tags
// @tag.description Tag management operations

// @tag.name Categories
// @tag.description Category management operations

// @tag.name Goals
// @tag.description Yearly goals and progress tracking

// @tag.name Templates
// @tag.description Reusable task templates

// @tag.name Analytics
// @tag.description Dashboard and analytics aggregates

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Taskflow API",
	Description:      "API for personal task management: recurring tasks, dependencies, goals, templates and analytics",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
