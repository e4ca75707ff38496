package main

import (
	_ "laundry_desk/docs"
	"laundry_desk/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Laundry Desk API
// @version         1.0
// @description     Laundry orders, service catalog, expenses and analytics backed by DynamoDB.
// @description     Collections can be followed live as server-sent events under /stream.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
