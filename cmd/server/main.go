package main

import (
	"os"

	"echo-widget/internal/app"
)

// @title           Echo Widget API
// @version         1.0
// @description     Backend of the embeddable Echo chat widget: brand configuration, widget instances, message relay and placeholder animation.
// @host            localhost:8000
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
