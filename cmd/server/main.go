package main

import (
	"os"

	"blinkchat/backend/internal/app"
)

func main() {
	os.Exit(app.Run())
}
